package dto

// SettingsRequest body para PUT /api/config.
type SettingsRequest struct {
	RUCEmisor    string `json:"ruc_emisor"`
	RazonEmisor  string `json:"razon_emisor"`
	SerieFactura string `json:"serie_factura"`
	SerieBoleta  string `json:"serie_boleta"`
	SerieNota    string `json:"serie_nota"`
	LogoDataURL  string `json:"logo_data_url,omitempty"`
	RemoveLogo   bool   `json:"remove_logo,omitempty"`
}

// SettingsResponse configuración actual del emisor.
type SettingsResponse struct {
	RUCEmisor   string            `json:"ruc_emisor"`
	RazonEmisor string            `json:"razon_emisor"`
	HasLogo     bool              `json:"has_logo"`
	Series      map[string]string `json:"series"`
	Counters    map[string]int    `json:"counters"`
}
