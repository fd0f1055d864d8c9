//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/delivery/http"
	"github.com/tair/storefront/internal/product/usecase/command"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies.
// publisher may be nil when purchase events are disabled.
func InitializeHTTPHandler(c *catalog.Catalog, publisher command.PurchasePublisher, reg prometheus.Registerer) *http.ProductHandler {
	wire.Build(AllHandlersSet)
	return nil
}
