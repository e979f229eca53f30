package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/macroplate/macroplate-backend/internal/auth"
	cartsvc "github.com/macroplate/macroplate-backend/internal/cart"
	"github.com/macroplate/macroplate-backend/internal/catalog"
	checkoutsvc "github.com/macroplate/macroplate-backend/internal/checkout"
	"github.com/macroplate/macroplate-backend/internal/goals"
	"github.com/macroplate/macroplate-backend/internal/orders"
	pkgauth "github.com/macroplate/macroplate-backend/pkg/auth"
	"github.com/macroplate/macroplate-backend/pkg/config"
	"github.com/macroplate/macroplate-backend/pkg/enums"
	"github.com/macroplate/macroplate-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{}, nil
}

type stubGoalsService struct{}

func (stubGoalsService) Get(ctx context.Context, userID uuid.UUID) (*goals.GoalDTO, error) {
	return &goals.GoalDTO{}, nil
}

func (stubGoalsService) Update(ctx context.Context, userID uuid.UUID, update goals.UpdateGoalDTO) (*goals.GoalDTO, error) {
	return &goals.GoalDTO{}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListAvailable(ctx context.Context) ([]catalog.MealDTO, error) {
	return []catalog.MealDTO{}, nil
}

func (stubCatalogService) ListAll(ctx context.Context) ([]catalog.MealDTO, error) {
	return []catalog.MealDTO{}, nil
}

func (stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*catalog.MealDTO, error) {
	return &catalog.MealDTO{ID: id}, nil
}

func (stubCatalogService) Create(ctx context.Context, dto catalog.CreateMealDTO) (*catalog.MealDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) Update(ctx context.Context, id uuid.UUID, dto catalog.UpdateMealDTO) (*catalog.MealDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*catalog.MealDTO, error) {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, token string) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{}, nil
}

func (stubCartService) SetItem(ctx context.Context, token string, mealID uuid.UUID, quantity int) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, token string, mealID uuid.UUID) (*cartsvc.Cart, error) {
	return &cartsvc.Cart{}, nil
}

func (stubCartService) Clear(ctx context.Context, token string) error {
	return nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Quote(ctx context.Context, token string) (*checkoutsvc.MaterializedCart, error) {
	return &checkoutsvc.MaterializedCart{}, nil
}

func (stubCheckoutService) Submit(ctx context.Context, token string, userID uuid.UUID, req checkoutsvc.SubmitRequest) (*checkoutsvc.SubmitResponse, error) {
	return &checkoutsvc.SubmitResponse{OrderID: uuid.New()}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) ListForUser(ctx context.Context, userID uuid.UUID, status *enums.OrderStatus, limit int) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, nil
}

func (stubOrdersService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func (stubOrdersService) ListAll(ctx context.Context, status *enums.OrderStatus, limit int) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, nil
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func (stubOrdersService) UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
		GoalsService:    stubGoalsService{},
		CatalogService:  stubCatalogService{},
		CartService:     stubCartService{},
		CheckoutService: stubCheckoutService{},
		OrdersService:   stubOrdersService{},
	})
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for order history got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestMealsAreParsedWithoutAuth(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/meals", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public meals got %d", resp.Code)
	}
}

func TestCartIssuesToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous cart got %d", resp.Code)
	}
	if token := resp.Header().Get("X-Cart-Token"); token == "" {
		t.Fatal("expected a cart token header on the response")
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
