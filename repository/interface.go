package repository

import (
	"context"
	"errors"

	"github.com/dombialcz/SevenTestsShop/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

type ProductRepository interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, price float64, inStock bool) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Categories(ctx context.Context) ([]string, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
}
