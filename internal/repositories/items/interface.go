package items

import (
	"context"

	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

// Repository stores inventory items. Every call is scoped to an owner; an
// item that exists but belongs to someone else is reported as not found.
type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, owner string, id int64) (*models.Item, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	SetQuantity(ctx context.Context, owner string, id int64, quantity int) error
	Delete(ctx context.Context, owner string, id int64) error
}
