package client

import (
	"context"

	"github.com/dmitrijs2005/packadmin/internal/client/models"
	"github.com/shopspring/decimal"
)

// Client is the remote data service contract used by the console.
type Client interface {
	Ping(ctx context.Context) error

	ListPacks(ctx context.Context) ([]models.Pack, error)
	ListAggregatedPacks(ctx context.Context) ([]models.AggregatedPack, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	CreatePack(ctx context.Context, draft models.PackDraft, images []models.Blob) (models.Pack, error)
	AddItem(ctx context.Context, packID int64, name string) (models.Item, error)
	DeleteItem(ctx context.Context, id int64, credential string) error
	AddImages(ctx context.Context, packID int64, images []models.Blob) error
	DeleteImages(ctx context.Context, ids []int64) error
	RecordSale(ctx context.Context, packID int64, amount, profit decimal.Decimal) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64, credential string) error
}
