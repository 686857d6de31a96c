package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/internal/application/aggregation"
	"github.com/jhoicas/Precios-api/internal/application/auth"
	"github.com/jhoicas/Precios-api/internal/application/catalog"
	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/application/ledger"
	"github.com/jhoicas/Precios-api/internal/application/review"
	"github.com/jhoicas/Precios-api/internal/infrastructure/memory"
	"github.com/jhoicas/Precios-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Precios-api/internal/interfaces/http"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

const adminEmail = "admin@precios.test"

// newTestApp arma la API completa sobre el almacén en memoria.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := memory.New()
	repos := db.Repos()
	log := logger.Nop()
	reg := metrics.NewRegistry()
	ident := identity.NewService(repos.Users, identity.Config{Attempts: 3}, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(repos.Users, ident, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, []string{adminEmail}),
		CatalogUC:     catalog.NewUseCase(db, repos, ident, reg, log),
		LedgerUC:      ledger.NewUseCase(repos, ident, reg, log),
		ReviewUC:      review.NewUseCase(db, repos, ident, reg, log),
		AggregationUC: aggregation.NewUseCase(repos, aggregation.Config{}),
		Identity:      ident,
		Storage:       db,
		Metrics:       reg,
		MetricsHTTP:   reg.Handler(),
		Log:           log,
		JWTSecret:     testJWTSecret,
		QueryTimeout:  5 * time.Second,
		ServiceName:   "precios-test",
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// signup registra y loguea; devuelve token e ID.
func signup(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()
	status := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: email, Password: "password123", Name: email}, nil)
	require.Equal(t, http.StatusCreated, status)
	var login dto.LoginResponse
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"}, &login)
	require.Equal(t, http.StatusOK, status)
	return login.Token, login.User.ID
}

func points(t *testing.T, app *fiber.App, token string) int64 {
	t.Helper()
	var me dto.UserResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/me", token, nil, &me))
	return me.Points
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: alta de producto, envío, revisión y precio más bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujo_EnvioAprobacionYPrecioMasBajo(t *testing.T) {
	app := newTestApp(t)
	userTok, _ := signup(t, app, "ana@precios.test")
	adminTok, _ := signup(t, app, adminEmail)

	var created dto.CreateProductResponse
	status := call(t, app, http.MethodPost, "/api/products", userTok,
		dto.CreateProductRequest{Barcode: "7790070", Name: "Dulce de leche", Brand: "La Salamandra"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(20), created.PointsEarned)
	assert.Equal(t, int64(20), points(t, app, userTok))

	var store dto.StoreResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stores", adminTok, dto.CreateStoreRequest{Name: "Coto"}, &store))

	var price dto.PriceResponse
	status = call(t, app, http.MethodPost, "/api/prices", userTok,
		map[string]any{"product_id": created.Product.ID, "store_id": store.ID, "amount": "1500.50"}, &price)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pendiente", price.State)
	assert.False(t, price.Verified)

	// pendiente: todavía no hay precio más bajo
	var lowest struct {
		LowestPrice *dto.LowestPriceResponse `json:"lowest_price"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+created.Product.ID+"/lowest-price", "", nil, &lowest))
	assert.Nil(t, lowest.LowestPrice)

	// un usuario común no ve la cola ni puede revisar
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodGet, "/api/review/queue", userTok, nil, nil))
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodPost, "/api/review/prices/"+price.ID, userTok, dto.ReviewPriceRequest{Decision: "approve"}, nil))

	var queue dto.PendingQueueResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/review/queue", adminTok, nil, &queue))
	require.Equal(t, 1, queue.Total)
	require.NotNil(t, queue.Items[0].Product)
	assert.Equal(t, "Dulce de leche", queue.Items[0].Product.Name)

	var reviewed dto.ReviewPriceResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/review/prices/"+price.ID, adminTok, dto.ReviewPriceRequest{Decision: "approve"}, &reviewed))
	assert.True(t, reviewed.Price.Verified)
	assert.Equal(t, int64(10), reviewed.PointsEarned)
	assert.Equal(t, int64(30), points(t, app, userTok))

	// segunda decisión: conflicto, sin puntos extra
	var errBody dto.ErrorResponse
	require.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/review/prices/"+price.ID, adminTok, dto.ReviewPriceRequest{Decision: "reject"}, &errBody))
	assert.Equal(t, "NOT_PENDING", errBody.Code)
	assert.Equal(t, int64(30), points(t, app, userTok))

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+created.Product.ID+"/lowest-price", "", nil, &lowest))
	require.NotNil(t, lowest.LowestPrice)
	assert.Equal(t, "1500.5", lowest.LowestPrice.Amount.String())
	assert.Equal(t, "Coto", lowest.LowestPrice.StoreName)

	var search dto.ProductListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/search?q=dulce", "", nil, &search))
	require.Len(t, search.Items, 1)
	require.NotNil(t, search.Items[0].LowestPrice)

	var featured dto.ProductListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/featured?n=5", "", nil, &featured))
	require.Len(t, featured.Items, 1)
	assert.Equal(t, created.Product.ID, featured.Items[0].ID)

	var validations dto.ValidationListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/review/prices/"+price.ID+"/validations", adminTok, nil, &validations))
	require.Len(t, validations.Items, 1)
	assert.Equal(t, "aprobado", validations.Items[0].Verdict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de entrada y de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestErrores_Mapeo(t *testing.T) {
	app := newTestApp(t)
	userTok, _ := signup(t, app, "beto@precios.test")

	var created dto.CreateProductResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/products", userTok,
		dto.CreateProductRequest{Barcode: "111", Name: "Yerba", Brand: "Rosamonte"}, &created))

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/products", userTok,
		dto.CreateProductRequest{Barcode: "111", Name: "Otra", Brand: "Otra"}, &errBody))
	assert.Equal(t, "DUPLICATE_BARCODE", errBody.Code)
	assert.Equal(t, int64(20), points(t, app, userTok))

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/prices/by-store-name", userTok,
		map[string]any{"product_id": created.Product.ID, "store_name": "Kiosco", "amount": 0}, &errBody))
	assert.Equal(t, "INVALID_AMOUNT", errBody.Code)

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/prices/by-store-name", userTok,
		map[string]any{"product_id": "no-existe", "store_name": "Kiosco", "amount": 10}, nil))

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/prices", "",
		map[string]any{"product_id": created.Product.ID, "store_id": "x", "amount": 10}, nil))

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/products/barcode/000", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/products/search?q=", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/products/featured?n=abc", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/products/featured?n=101", "", nil, nil))
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: "beto@precios.test", Password: "password123", Name: "B"}, nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "beto@precios.test", Password: "incorrecta"}, nil))
}

func TestStores_ComercioAdHocYVerificacion(t *testing.T) {
	app := newTestApp(t)
	userTok, _ := signup(t, app, "caro@precios.test")
	adminTok, _ := signup(t, app, adminEmail)

	var a, b dto.StoreResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/stores/find-or-create", userTok, dto.FindOrCreateStoreRequest{Name: "Verdulería Tito"}, &a))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/stores/find-or-create", userTok, dto.FindOrCreateStoreRequest{Name: "Verdulería Tito"}, &b))
	assert.Equal(t, a.ID, b.ID)
	assert.False(t, a.Verified)

	var list dto.StoreListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stores/verified", "", nil, &list))
	assert.Empty(t, list.Items)

	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodPost, "/api/stores/"+a.ID+"/verify", userTok, nil, nil))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/stores/"+a.ID+"/verify", adminTok, nil, nil))

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stores/verified", "", nil, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Verdulería Tito", list.Items[0].Name)
}

func TestHealthYMetrics(t *testing.T) {
	app := newTestApp(t)

	var health map[string]string
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "ok", health["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "precios_http_requests_total")
}
