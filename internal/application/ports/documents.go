package ports

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante PDF de una orden.
type ReceiptGenerator interface {
	Generate(order *entity.Order) ([]byte, error)
}

// Feed documento XML del catálogo con su digest canónico (ETag).
type Feed struct {
	XML    []byte
	Digest string
}

// FeedBuilder construye el feed XML de productos de una integración.
type FeedBuilder interface {
	Build(integration *entity.Integration, products []*entity.Product) (*Feed, error)
}

// ConnectivityChecker prueba la conexión con el endpoint de una integración.
type ConnectivityChecker interface {
	Check(ctx context.Context, url string) (statusCode int, err error)
}
