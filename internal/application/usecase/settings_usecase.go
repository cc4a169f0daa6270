package usecase

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

// SettingsUseCase configuración del emisor: RUC, razón social, series y logo.
type SettingsUseCase struct {
	docs ports.DocumentRunner
	log  *logger.Logger
}

func NewSettingsUseCase(docs ports.DocumentRunner, log *logger.Logger) *SettingsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsUseCase{docs: docs, log: log.Component("settings")}
}

// Get devuelve la configuración actual (las series faltantes se muestran con su valor por defecto).
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	var out *dto.SettingsResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = toSettingsResponse(doc.Settings)
		return nil
	})
	return out, err
}

// Update valida y guarda la configuración. Los correlativos no se tocan.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	ruc := strings.TrimSpace(in.RUCEmisor)
	razon := strings.TrimSpace(in.RazonEmisor)
	sf := strings.ToUpper(strings.TrimSpace(in.SerieFactura))
	sb := strings.ToUpper(strings.TrimSpace(in.SerieBoleta))
	sn := strings.ToUpper(strings.TrimSpace(in.SerieNota))

	if !sunat.ValidRUC(ruc) {
		return nil, domain.Invalid("ruc_emisor", "RUC debe tener 11 dígitos.")
	}
	if razon == "" {
		return nil, domain.Invalid("razon_emisor", "Razón social requerida.")
	}
	if err := sunat.ValidateSeries(sunat.DocTypeFactura, sf); err != nil {
		return nil, domain.Invalid("serie_factura", "Serie factura: 4 caracteres y debe iniciar con F (Ej: F001).")
	}
	if err := sunat.ValidateSeries(sunat.DocTypeBoleta, sb); err != nil {
		return nil, domain.Invalid("serie_boleta", "Serie boleta: 4 caracteres y debe iniciar con B (Ej: B001).")
	}
	if sn == "" {
		sn = sunat.DefaultSeries(sunat.DocTypeNotaPedido)
	}
	logo := strings.TrimSpace(in.LogoDataURL)
	if logo != "" {
		if _, _, err := DecodeDataURL(logo); err != nil {
			return nil, domain.Invalid("logo_data_url", "El logo debe ser una imagen PNG o JPEG en formato data URL.")
		}
	}

	var out *dto.SettingsResponse
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		s := &doc.Settings
		s.RUCEmisor = ruc
		s.RazonEmisor = razon
		if s.Series == nil {
			s.Series = map[string]string{}
		}
		s.Series[sunat.DocTypeFactura] = sf
		s.Series[sunat.DocTypeBoleta] = sb
		s.Series[sunat.DocTypeNotaPedido] = sn
		switch {
		case logo != "":
			s.LogoDataURL = &logo
		case in.RemoveLogo:
			s.LogoDataURL = nil
		}
		out = toSettingsResponse(*s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("ruc", ruc).Str("serie_factura", sf).Str("serie_boleta", sb).Str("serie_nota", sn).Msg("configuración guardada")
	return out, nil
}

func toSettingsResponse(s entity.Settings) *dto.SettingsResponse {
	series := make(map[string]string, len(sunat.DocTypes))
	counters := make(map[string]int, len(sunat.DocTypes))
	for _, t := range sunat.DocTypes {
		series[t] = s.Series[t]
		if series[t] == "" {
			series[t] = sunat.DefaultSeries(t)
		}
		counters[t] = s.Counters[t]
		if counters[t] <= 0 {
			counters[t] = 1
		}
	}
	return &dto.SettingsResponse{
		RUCEmisor:   s.RUCEmisor,
		RazonEmisor: s.RazonEmisor,
		HasLogo:     s.LogoDataURL != nil && *s.LogoDataURL != "",
		Series:      series,
		Counters:    counters,
	}
}

// DecodeDataURL decodifica un data URL base64 de imagen: devuelve los bytes y la extensión (png|jpg).
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, "", domain.ErrInvalidInput
	}
	var ext string
	switch strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64") {
	case "image/png":
		ext = "png"
	case "image/jpeg", "image/jpg":
		ext = "jpg"
	default:
		return nil, "", domain.ErrInvalidInput
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return nil, "", domain.ErrInvalidInput
	}
	return raw, ext, nil
}
