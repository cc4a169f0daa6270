package sunat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/domain"
)

var _ billing.Collaborator = (*CollaboratorClient)(nil)

// maxResponseBytes límite de lectura de respuestas del colaborador.
const maxResponseBytes = 1 << 20

// CollaboratorClient implementa billing.Collaborator contra el backend HTTP:
//
//	GET  {base}/api/validate/{tipo}/{numero} → {ok, razon?}
//	POST {base}/api/sunat/send {fileName, xmlText} → JSON arbitrario
//
// La validación exige 2xx. En el envío el cuerpo JSON es la respuesta de SUNAT
// aunque venga con 4xx/5xx (rechazos con código y mensaje); solo falla si no hay
// respuesta o si el cuerpo no es JSON.
//
// Usa net/http de la stdlib con timeout por llamada; sin reintentos.
type CollaboratorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCollaboratorClient construye el cliente. baseURL vacío = servicio no configurado.
func NewCollaboratorClient(baseURL string, timeout time.Duration) *CollaboratorClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CollaboratorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	FileName string `json:"fileName"`
	XMLText  string `json:"xmlText"`
}

// ValidateDocument consulta el padrón a través del colaborador.
func (c *CollaboratorClient) ValidateDocument(ctx context.Context, docType, docNum string) (*billing.ValidationResult, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: validación no configurada", domain.ErrExternalService)
	}
	endpoint := fmt.Sprintf("%s/api/validate/%s/%s", c.baseURL,
		url.PathEscape(strings.ToLower(docType)), url.PathEscape(docNum))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrExternalService, status)
	}
	var res billing.ValidationResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: respuesta inválida: %v", domain.ErrExternalService, err)
	}
	return &res, nil
}

// SendDocument envía el XML y devuelve la respuesta JSON tal cual.
func (c *CollaboratorClient) SendDocument(ctx context.Context, fileName, xmlText string) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: envío no configurado", domain.ErrExternalService)
	}
	payload, err := json.Marshal(sendRequest{FileName: fileName, XMLText: xmlText})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sunat/send", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: HTTP %d, respuesta no es JSON", domain.ErrExternalService, status)
	}
	return json.RawMessage(body), nil
}

// do ejecuta la petición y devuelve estado y cuerpo; solo falla por transporte.
func (c *CollaboratorClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrExternalService, err)
	}
	return resp.StatusCode, body, nil
}
