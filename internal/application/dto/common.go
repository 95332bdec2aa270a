package dto

// ErrorResponse cuerpo de error HTTP. El cliente distingue 404 por status,
// no por el cuerpo; Code es un identificador estable para programas.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
