package services_test

import (
	"path/filepath"
	"testing"

	"gudang/internal/repositories"
	"gudang/internal/storage"

	"github.com/stretchr/testify/require"
)

type backend struct {
	products repositories.ProductRepository
	sales    repositories.SaleRepository
	reports  repositories.ReportRepository
}

// forEachBackend runs fn against a fresh SQLite store and a fresh MemoryStore.
func forEachBackend(t *testing.T, fn func(t *testing.T, b backend)) {
	t.Run("sqlite", func(t *testing.T) {
		gw, err := storage.Open(storage.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "inventory.db")})
		require.NoError(t, err)
		t.Cleanup(func() { _ = gw.Close() })
		require.NoError(t, gw.EnsureSchema())

		db := gw.DB()
		fn(t, backend{
			products: repositories.NewGORMProductRepository(db),
			sales:    repositories.NewGORMSaleRepository(db),
			reports:  repositories.NewGORMReportRepository(db),
		})
	})
	t.Run("memory", func(t *testing.T) {
		store := repositories.NewMemoryStore()
		fn(t, backend{
			products: store.Products(),
			sales:    store.Sales(),
			reports:  store.Reports(),
		})
	})
}
