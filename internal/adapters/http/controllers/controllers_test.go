package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/rafaelleal24/inventory/internal/adapters/http/controllers"
	"github.com/rafaelleal24/inventory/internal/core/auth"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/port/mock"
	"github.com/rafaelleal24/inventory/internal/core/service"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const widgetID = "65f1c2a9e4b0a1b2c3d4e5f6"

type harness struct {
	products *mock.MockProductPort
	users    *mock.MockUserPort
	hasher   *mock.MockPasswordHasher
	tokens   *mock.MockTokenIssuer
	engine   *gin.Engine
}

func withAdmin(c *gin.Context) {
	ctx := auth.WithPrincipal(c.Request.Context(), &domain.Principal{UserID: "u1", Username: "admin", Role: domain.RoleAdmin})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func newHarness(t *testing.T, maxUploadBytes int64) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		products: mock.NewMockProductPort(ctrl),
		users:    mock.NewMockUserPort(ctrl),
		hasher:   mock.NewMockPasswordHasher(ctrl),
		tokens:   mock.NewMockTokenIssuer(ctrl),
	}

	events := mock.NewMockEventPort(ctrl)
	events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	txManager := mock.NewMockTransactionManager(ctrl)
	txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()

	productCache := mock.NewMockVersionedCachePort[domain.Product](ctrl)
	productCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	productCache.EXPECT().SetIfNewer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	productCache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	idempotencyCache := mock.NewMockCachePort[service.IdempotencyEntry[domain.Product]](ctrl)
	idempotency := service.NewIdempotencyService(idempotencyCache, time.Minute, 10*time.Millisecond, time.Second)

	catalog := service.NewCatalogService(h.products, events, txManager, productCache)
	ledger := service.NewLedgerService(h.products, events, txManager, productCache, idempotency)
	transfer := service.NewTransferService(catalog)
	authService := service.NewAuthService(h.users, h.hasher, h.tokens)

	productController := controllers.NewProductController(catalog)
	stockController := controllers.NewStockController(ledger)
	transferController := controllers.NewTransferController(transfer, maxUploadBytes)
	authController := controllers.NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/auth/login", authController.Login)

	secured := engine.Group("/", withAdmin)
	secured.GET("/products", productController.List)
	secured.POST("/products", productController.Create)
	secured.GET("/products/export/csv", transferController.Export)
	secured.POST("/products/import/csv", transferController.Import)
	secured.GET("/products/:id", productController.Get)
	secured.PUT("/products/:id", productController.Update)
	secured.DELETE("/products/:id", productController.Delete)
	secured.POST("/products/:id/stock-in", stockController.StockIn)
	secured.POST("/products/:id/stock-out", stockController.StockOut)
	secured.GET("/categories", productController.Categories)
	secured.GET("/dashboard", productController.Dashboard)

	h.engine = engine
	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func catalogFixture() []*domain.Product {
	return []*domain.Product{
		{ID: widgetID, Name: "Widget", Category: "Tools", Price: 999, Stock: 5},
		{ID: "65f1c2a9e4b0a1b2c3d4e5f7", Name: "Hammer", Category: "Hardware", Price: 2000, Stock: 60},
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.Unmarshal(rec.Body.Bytes(), &value); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return value
}

func TestProductController_List(t *testing.T) {
	h := newHarness(t, 1<<20)
	h.products.EXPECT().GetAll(gomock.Any()).Return(catalogFixture(), nil)

	rec := h.do(http.MethodGet, "/products?search=WID", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	products := decode[[]controllers.ProductResponse](t, rec)
	if len(products) != 1 || products[0].Name != "Widget" {
		t.Fatalf("unexpected products %+v", products)
	}
	if products[0].Price != 9.99 || products[0].StockLevel != "low" {
		t.Fatalf("unexpected price or level %+v", products[0])
	}
}

func TestProductController_ListRejectsNegativeSkip(t *testing.T) {
	h := newHarness(t, 1<<20)

	rec := h.do(http.MethodGet, "/products?skip=-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductController_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().GetByID(gomock.Any(), domain.ID(widgetID)).Return(catalogFixture()[0], nil)

		rec := h.do(http.MethodGet, "/products/"+widgetID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := decode[controllers.ProductResponse](t, rec); got.ID != widgetID {
			t.Fatalf("unexpected product %+v", got)
		}
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodGet, "/products/not-an-id", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestProductController_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				p.ID = widgetID
				return nil
			})

		rec := h.do(http.MethodPost, "/products", `{"name":" Widget ","category":"Tools","price":9.99,"stock":5}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		got := decode[controllers.ProductResponse](t, rec)
		if got.ID != widgetID || got.Name != "Widget" || got.Price != 9.99 || got.Stock != 5 {
			t.Fatalf("unexpected product %+v", got)
		}
	})

	t.Run("missing price", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPost, "/products", `{"name":"Widget","category":"Tools"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("negative stock", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPost, "/products", `{"name":"Widget","category":"Tools","price":1,"stock":-1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProductController_Update(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().Update(gomock.Any(), gomock.Any()).Return(serviceerrors.NewNotFoundError("product not found"))

		rec := h.do(http.MethodPut, "/products/"+widgetID, `{"name":"Widget","category":"Tools","price":9.99,"stock":5}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("stock is required", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPut, "/products/"+widgetID, `{"name":"Widget","category":"Tools","price":9.99}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProductController_Delete(t *testing.T) {
	h := newHarness(t, 1<<20)
	gomock.InOrder(
		h.products.EXPECT().GetByID(gomock.Any(), domain.ID(widgetID)).Return(catalogFixture()[0], nil),
		h.products.EXPECT().Delete(gomock.Any(), domain.ID(widgetID)).Return(nil),
	)

	rec := h.do(http.MethodDelete, "/products/"+widgetID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestProductController_Categories(t *testing.T) {
	h := newHarness(t, 1<<20)
	h.products.EXPECT().GetAll(gomock.Any()).Return(catalogFixture(), nil)

	rec := h.do(http.MethodGet, "/categories", "")
	got := decode[[]string](t, rec)
	if len(got) != 2 || got[0] != "Tools" || got[1] != "Hardware" {
		t.Fatalf("unexpected categories %v", got)
	}
}

func TestProductController_Dashboard(t *testing.T) {
	h := newHarness(t, 1<<20)
	h.products.EXPECT().GetAll(gomock.Any()).Return(catalogFixture(), nil)

	rec := h.do(http.MethodGet, "/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decode[controllers.DashboardResponse](t, rec)
	if got.Stats.TotalProducts != 2 || got.Stats.LowStockItems != 1 || got.Stats.Categories != 2 {
		t.Fatalf("unexpected stats %+v", got.Stats)
	}
	if got.Stats.TotalValue != 1249.95 {
		t.Fatalf("expected total value 1249.95, got %v", got.Stats.TotalValue)
	}
	if len(got.RecentProducts) != 2 {
		t.Fatalf("expected 2 recent products, got %d", len(got.RecentProducts))
	}
}

func TestStockController(t *testing.T) {
	t.Run("stock in", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().AdjustStock(gomock.Any(), domain.ID(widgetID), 3).
			Return(&domain.Product{ID: widgetID, Name: "Widget", Category: "Tools", Price: 999, Stock: 8}, nil)

		rec := h.do(http.MethodPost, "/products/"+widgetID+"/stock-in", `{"quantity":3}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := decode[controllers.ProductResponse](t, rec); got.Stock != 8 {
			t.Fatalf("expected stock 8, got %d", got.Stock)
		}
	})

	t.Run("stock out beyond available", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().AdjustStock(gomock.Any(), domain.ID(widgetID), -8).
			Return(nil, serviceerrors.NewInsufficientStockError(widgetID, 5, 8))

		rec := h.do(http.MethodPost, "/products/"+widgetID+"/stock-out", `{"quantity":8}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if body := rec.Body.String(); !strings.Contains(body, "available 5") {
			t.Fatalf("expected available quantity in body, got %s", body)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPost, "/products/"+widgetID+"/stock-out", `{"quantity":0}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPost, "/products/"+widgetID+"/stock-in", `{"quantity":-2}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransferController_Export(t *testing.T) {
	h := newHarness(t, 1<<20)
	h.products.EXPECT().GetAll(gomock.Any()).Return(catalogFixture(), nil)

	rec := h.do(http.MethodGet, "/products/export/csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=products.csv" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected content type %q", got)
	}
	want := "name,category,price,stock\nWidget,Tools,9.99,5\nHammer,Hardware,20.00,60\n"
	if rec.Body.String() != want {
		t.Fatalf("expected %q, got %q", want, rec.Body.String())
	}
}

func upload(t *testing.T, h *harness, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/products/import/csv", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func TestTransferController_Import(t *testing.T) {
	t.Run("valid and invalid rows", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		rec := upload(t, h, "products.csv", "name,category,price,stock\nWidget,Tools,9.99,5\nBad,Tools,-1,2\n")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		report := decode[controllers.ImportReportResponse](t, rec)
		if report.Imported != 1 || report.Failed != 1 {
			t.Fatalf("unexpected report %+v", report)
		}
		if len(report.Errors) != 1 || report.Errors[0].Line != 3 {
			t.Fatalf("unexpected row errors %+v", report.Errors)
		}
	})

	t.Run("storage failure counts as failed row", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(serviceerrors.NewStorageError("failed to create product", errors.New("timeout")))

		rec := upload(t, h, "products.csv", "name,category,price,stock\nWidget,Tools,9.99,5\n")
		report := decode[controllers.ImportReportResponse](t, rec)
		if report.Imported != 0 || report.Failed != 1 {
			t.Fatalf("unexpected report %+v", report)
		}
	})

	t.Run("not a csv file", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := upload(t, h, "products.xlsx", "name,category,price,stock\n")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPost, "/products/import/csv", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := upload(t, h, "products.csv", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("upload too large", func(t *testing.T) {
		h := newHarness(t, 64)

		rec := upload(t, h, "products.csv", "name,category,price,stock\n"+strings.Repeat("Widget,Tools,9.99,5\n", 20))
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rec.Code)
		}
	})
}

func TestAuthController_Login(t *testing.T) {
	admin := &domain.User{ID: "u1", Username: "admin", PasswordHash: "hash", Role: domain.RoleAdmin}

	t.Run("valid credentials", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.users.EXPECT().GetByUsername(gomock.Any(), "admin").Return(admin, nil)
		h.hasher.EXPECT().Compare("hash", "admin123").Return(nil)
		h.tokens.EXPECT().Issue(admin).Return("signed-token", nil)

		rec := h.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"admin123"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		got := decode[controllers.LoginResponse](t, rec)
		if got.AccessToken != "signed-token" || got.TokenType != "bearer" || got.User.Username != "admin" || got.User.Role != "admin" {
			t.Fatalf("unexpected login response %+v", got)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		h := newHarness(t, 1<<20)
		h.users.EXPECT().GetByUsername(gomock.Any(), "admin").Return(admin, nil)
		h.hasher.EXPECT().Compare("hash", "nope").Return(errors.New("mismatch"))

		rec := h.do(http.MethodPost, "/auth/login", `{"username":"admin","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		h := newHarness(t, 1<<20)

		rec := h.do(http.MethodPost, "/auth/login", `{"username":"admin"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
