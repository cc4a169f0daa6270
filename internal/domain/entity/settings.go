package entity

// Settings configuración del emisor, series y correlativos por tipo de comprobante.
type Settings struct {
	RUCEmisor   string            `json:"rucEmisor"`
	RazonEmisor string            `json:"razonEmisor"`
	LogoDataURL *string           `json:"logoDataUrl"`
	Series      map[string]string `json:"series"`
	Counters    map[string]int    `json:"counters"`
}
