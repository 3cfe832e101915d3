package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// repositoriesUnderTest runs the same contract against every implementation.
func repositoriesUnderTest(t *testing.T) map[string]repositories.ProductRepository {
	return map[string]repositories.ProductRepository{
		"memory": repositories.NewMemoryProductRepository(),
		"gorm":   repositories.NewGORMProductRepository(openTestDB(t)),
	}
}

func newProduct(t *testing.T, name string, stock int) models.Product {
	t.Helper()
	p, err := models.NewProduct(name, nil, decimal.RequireFromString("9.99"), stock, "Tools",
		time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestProductRepository_SaveAssignsIDs(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := newProduct(t, "Widget", 10)
			second := newProduct(t, "Gadget", 3)

			require.NoError(t, repo.Save(ctx, &first))
			require.NoError(t, repo.Save(ctx, &second))
			assert.Equal(t, uint(1), first.ID)
			assert.Equal(t, uint(2), second.ID)

			got, err := repo.FindByID(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "Widget", got.Name)
			assert.True(t, got.Price.Equal(decimal.RequireFromString("9.99")))
			assert.Equal(t, 10, got.StockQuantity)
			assert.True(t, got.CreatedAt.Equal(first.CreatedAt))
		})
	}
}

func TestProductRepository_SaveOverwrites(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := newProduct(t, "Widget", 10)
			require.NoError(t, repo.Save(ctx, &p))

			updated, err := p.WithStockQuantity(4, p.UpdatedAt.Add(time.Minute))
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, &updated))
			assert.Equal(t, p.ID, updated.ID)

			got, err := repo.FindByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, 4, got.StockQuantity)
			assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
			assert.True(t, got.CreatedAt.Equal(p.CreatedAt))

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestProductRepository_SaveDoesNotResurrectDeleted(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := newProduct(t, "Widget", 10)
			require.NoError(t, repo.Save(ctx, &p))

			// a concurrent delete lands between read and write
			updated, err := p.WithStockQuantity(4, p.UpdatedAt.Add(time.Minute))
			require.NoError(t, err)
			require.NoError(t, repo.DeleteByID(ctx, p.ID))

			assert.ErrorIs(t, repo.Save(ctx, &updated), models.ErrNotFound)
			_, err = repo.FindByID(ctx, p.ID)
			assert.ErrorIs(t, err, models.ErrNotFound)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestProductRepository_PriceRoundTrip(t *testing.T) {
	prices := []string{"0.0001", "19.99", "1234567890.1234", "999999999999999.9999"}
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, raw := range prices {
				want := decimal.RequireFromString(raw)
				p, err := models.NewProduct("Priced", nil, want, 1, "Tools", time.Now())
				require.NoError(t, err)
				require.NoError(t, repo.Save(ctx, &p))

				got, err := repo.FindByID(ctx, p.ID)
				require.NoError(t, err)
				assert.True(t, got.Price.Equal(want), "in=%s out=%s", raw, got.Price.String())
			}
		})
	}
}

func TestProductRepository_FindAllOrdered(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.NotNil(t, all)
			assert.Empty(t, all)

			for _, n := range []string{"A", "B", "C"} {
				p := newProduct(t, n, 1)
				require.NoError(t, repo.Save(ctx, &p))
			}

			all, err = repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			for i, p := range all {
				assert.Equal(t, uint(i+1), p.ID)
			}
		})
	}
}

func TestProductRepository_FindByIDNotFound(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			got, err := repo.FindByID(context.Background(), 9999)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
}

func TestProductRepository_DeleteByID(t *testing.T) {
	for name, repo := range repositoriesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := newProduct(t, "Widget", 10)
			require.NoError(t, repo.Save(ctx, &p))

			require.NoError(t, repo.DeleteByID(ctx, p.ID))
			_, err := repo.FindByID(ctx, p.ID)
			assert.ErrorIs(t, err, models.ErrNotFound)

			// deleting a missing id is a no-op
			assert.NoError(t, repo.DeleteByID(ctx, p.ID))
			assert.NoError(t, repo.DeleteByID(ctx, 4242))
		})
	}
}

func TestGORMUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Username: "operator", Email: "op@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "operator")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "op@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "operator", byID.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// username is unique
	assert.Error(t, repo.Create(ctx, &models.User{Username: "operator", Email: "other@example.com", Password: "x"}))
}
