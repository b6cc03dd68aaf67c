package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DATABASE_URLがあるときだけ実際のPostgreSQLで動かす
var (
	dbOnce sync.Once
	dbConn *gorm.DB
	dbErr  error
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}

	dbOnce.Do(func() {
		dbConn, dbErr = db.Connect(config.Config{DatabaseURL: dsn, GoEnv: "test"})
		if dbErr == nil {
			dbErr = db.Migrate(dbConn)
		}
	})
	require.NoError(t, dbErr)
	return dbConn
}

// テストごとに衝突しない値
func unique(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// ユーザーを作り、テスト終了時に消す（住所・カートもCASCADEで消える）
func seedUser(t *testing.T, gdb *gorm.DB) *model.User {
	t.Helper()
	name := unique("user")
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: model.RoleUser, IsActive: true}
	require.NoError(t, NewUserGormRepository(gdb).Create(context.Background(), u))
	t.Cleanup(func() { _ = gdb.Delete(&model.User{}, u.ID).Error })
	return u
}

// カテゴリを作り、テスト終了時に消す（商品もCASCADEで消える）
func seedCategory(t *testing.T, gdb *gorm.DB) model.Category {
	t.Helper()
	slug := unique("cat")
	c, err := NewCategoryGormRepository(gdb).Create(context.Background(), model.Category{Title: "Shirts", Slug: slug, IsActive: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gdb.Delete(&model.Category{}, c.ID).Error })
	return c
}

func seedProduct(t *testing.T, gdb *gorm.DB, categoryID int64, createdAt time.Time) model.Product {
	t.Helper()
	p, err := NewProductGormRepository(gdb).Create(context.Background(), model.Product{
		Title:            "Linen Shirt",
		Slug:             "linen-shirt",
		SKU:              unique("sku"),
		ShortDescription: "Breathable",
		Price:            decimal.RequireFromString("19.99"),
		CategoryID:       categoryID,
		IsActive:         true,
		CreatedAt:        createdAt,
	})
	require.NoError(t, err)
	return p
}
