package shop

import (
	"context"

	"github.com/dashmarket/storefront/pkg/backend"
	"github.com/dashmarket/storefront/pkg/catalog"
)

// Backend is the part of the REST API the shop relies on. *backend.Client
// implements it.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.LoginResponse, error)
	Dashboards(ctx context.Context) ([]catalog.Dashboard, error)
	Dashboard(ctx context.Context, id string) (*catalog.Dashboard, error)
	Purchase(ctx context.Context, token string, req backend.PurchaseRequest) (*backend.PurchaseResponse, error)
}

var _ Backend = (*backend.Client)(nil)
