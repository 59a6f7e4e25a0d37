package dto

// ErrorResponse cuerpo de error HTTP. Details lleva los campos inválidos o el contexto
// de una transición rechazada.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
