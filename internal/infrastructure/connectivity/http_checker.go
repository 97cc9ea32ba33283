// Package connectivity prueba el endpoint configurado de una integración.
package connectivity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/engage-api/internal/application/ports"
)

var _ ports.ConnectivityChecker = (*HTTPChecker)(nil)

// DefaultTimeout tope de la prueba de conexión.
const DefaultTimeout = 5 * time.Second

// HTTPChecker hace un GET y devuelve el status; no sigue más de 3 redirecciones.
type HTTPChecker struct {
	client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{client: &http.Client{
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}}
}

func (c *HTTPChecker) Check(ctx context.Context, rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return 0, fmt.Errorf("connectivity: url inválida %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("connectivity: crear request: %w", err)
	}
	req.Header.Set("User-Agent", "engage-api/integration-test")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("connectivity: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
	return resp.StatusCode, nil
}
