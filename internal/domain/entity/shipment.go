package entity

// Shipment datos de entrega del chip físico. Solo existe para ventas con ChipFisico.
type Shipment struct {
	SaleID         int64
	Street         string
	Number         string
	FloorApartment string // opcional
	Locality       string
	Province       string
	PostalCode     string
	ContactName    string
	ContactPhone   string
	Notes          string // opcional
}
