package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con un mensaje para el usuario.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImportResult resultado de una importación masiva.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// DateRange rango de fechas inclusivo (YYYY-MM-DD); vacío = sin límite.
type DateRange struct {
	From string `query:"desde" json:"desde,omitempty"`
	To   string `query:"hasta" json:"hasta,omitempty"`
}

// Contains indica si la fecha (YYYY-MM-DD) cae dentro del rango.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}
