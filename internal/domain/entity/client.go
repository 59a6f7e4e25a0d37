package entity

import "time"

// Tipos de documento aceptados para clientes.
const (
	DocumentDNI       = "DNI"
	DocumentCUIL      = "CUIL"
	DocumentCUIT      = "CUIT"
	DocumentPasaporte = "PASAPORTE"
)

// Client titular de una o más ventas. Lo administra el módulo de clientes;
// el motor de ventas solo lo busca, lo crea si falta y lo asocia.
type Client struct {
	ID             string
	FirstName      string
	LastName       string
	DocumentType   string
	DocumentNumber string
	Email          string
	Phone          string
	CreatedAt      time.Time
}

// FullName nombre para mostrar.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
