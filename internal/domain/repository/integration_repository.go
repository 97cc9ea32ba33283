package repository

import (
	"context"
	"time"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// IntegrationRepository define el puerto de persistencia para integraciones y su log.
type IntegrationRepository interface {
	Create(ctx context.Context, i *entity.Integration) error
	GetByID(ctx context.Context, id string) (*entity.Integration, error)
	Update(ctx context.Context, i *entity.Integration) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p Page) ([]*entity.Integration, int, error)
	MarkTested(ctx context.Context, id string, at time.Time) error
	AddLog(ctx context.Context, l *entity.IntegrationLog) error
	ListLogs(ctx context.Context, integrationID string, p Page) ([]*entity.IntegrationLog, int, error)
}
