package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	"github.com/macroplate/macroplate-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ordersDDL := `CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_price NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  delivery_address TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	linesDDL := `CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  meal_id TEXT NOT NULL,
  meal_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_at_purchase NUMERIC NOT NULL,
  created_at DATETIME
);`
	usersDDL := `CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ordersDDL).Error)
	require.NoError(t, conn.Exec(linesDDL).Error)
	require.NoError(t, conn.Exec(usersDDL).Error)

	t.Cleanup(func() {
		conn.Exec("DELETE FROM order_lines")
		conn.Exec("DELETE FROM orders")
		conn.Exec("DELETE FROM users")
	})

	return conn
}

func mustCreateOrder(t *testing.T, repo *Repository, userID uuid.UUID, createdAt time.Time, status enums.OrderStatus) *models.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), &models.Order{
		UserID:          userID,
		TotalPrice:      decimal.RequireFromString("25.00"),
		Status:          status,
		DeliveryAddress: "1 Main St",
	})
	require.NoError(t, err)
	// Backdate for deterministic ordering.
	require.NoError(t, repo.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		UpdateColumn("created_at", createdAt).Error)
	return order
}

func TestListReturnsNewestFirst(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := mustCreateOrder(t, repo, userID, base, enums.OrderStatusPending)
	middle := mustCreateOrder(t, repo, userID, base.Add(time.Hour), enums.OrderStatusPending)
	newest := mustCreateOrder(t, repo, userID, base.Add(2*time.Hour), enums.OrderStatusPending)

	orders, err := repo.List(ctx, ListFilters{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, newest.ID, orders[0].ID)
	require.Equal(t, middle.ID, orders[1].ID)
	require.Equal(t, oldest.ID, orders[2].ID)

	limited, err := repo.List(ctx, ListFilters{UserID: &userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, newest.ID, limited[0].ID)
}

func TestListFiltersByStatus(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mustCreateOrder(t, repo, userID, base, enums.OrderStatusPending)
	processing := mustCreateOrder(t, repo, userID, base.Add(time.Hour), enums.OrderStatusProcessing)

	status := enums.OrderStatusProcessing
	orders, err := repo.List(ctx, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, processing.ID, orders[0].ID)
}

func TestListScopesToUser(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mine := uuid.New()
	other := uuid.New()
	mustCreateOrder(t, repo, mine, base, enums.OrderStatusPending)
	mustCreateOrder(t, repo, other, base.Add(time.Hour), enums.OrderStatusPending)

	orders, err := repo.List(ctx, ListFilters{UserID: &mine})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, mine, orders[0].UserID)
}

func TestListWithUserPreloadsOwner(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	owner := models.User{
		Email:        "casey@example.com",
		PasswordHash: "x",
		FirstName:    "Casey",
		LastName:     "Nguyen",
	}
	require.NoError(t, conn.Create(&owner).Error)
	mustCreateOrder(t, repo, owner.ID, time.Now().UTC(), enums.OrderStatusPending)

	orders, err := repo.List(ctx, ListFilters{WithUser: true})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].User)
	require.Equal(t, "casey@example.com", orders[0].User.Email)

	plain, err := repo.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Len(t, plain, 1)
	require.Nil(t, plain[0].User)
}

func TestFindByIDPreloadsLines(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order := mustCreateOrder(t, repo, uuid.New(), time.Now().UTC(), enums.OrderStatusPending)
	require.NoError(t, repo.CreateLines(ctx, []models.OrderLine{
		{
			OrderID:         order.ID,
			MealID:          uuid.New(),
			MealName:        "Salmon Plate",
			Quantity:        2,
			PriceAtPurchase: decimal.RequireFromString("18.90"),
		},
	}))

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	require.Equal(t, "Salmon Plate", loaded.Lines[0].MealName)
	require.True(t, loaded.Lines[0].PriceAtPurchase.Equal(decimal.RequireFromString("18.90")))
}

func TestRepoUpdateStatusUnknownOrder(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusProcessing)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateDefaultsStatuses(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)

	order, err := repo.Create(context.Background(), &models.Order{
		UserID:          uuid.New(),
		TotalPrice:      decimal.RequireFromString("10.00"),
		DeliveryAddress: "1 Main St",
	})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, order.Status)
	require.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)
}
