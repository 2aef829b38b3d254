package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
)

const knownItemID = "3f1c2a9e-8b7d-4c6a-9e5f-1a2b3c4d5e6f"

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios mínimos
// ──────────────────────────────────────────────────────────────────────────────

type stubItemRepo struct{ item *entity.Item }

func (r *stubItemRepo) Create(context.Context, *entity.Item) error { return nil }
func (r *stubItemRepo) Update(context.Context, *entity.Item) error { return nil }
func (r *stubItemRepo) Upsert(context.Context, *entity.Item) error { return nil }
func (r *stubItemRepo) GetByCode(context.Context, string) (*entity.Item, error) {
	return nil, nil
}
func (r *stubItemRepo) List(context.Context) ([]*entity.Item, error) { return nil, nil }
func (r *stubItemRepo) Delete(context.Context, string) error         { return domain.ErrNotFound }

func (r *stubItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	if r.item != nil && r.item.ID == id {
		cp := *r.item
		return &cp, nil
	}
	return nil, nil
}

type stubMovRepo struct {
	mu    sync.Mutex
	moves []*entity.StockMovement
}

func (r *stubMovRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = append(r.moves, m)
	return nil
}

func (r *stubMovRepo) List(context.Context, repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moves, nil
}

func (r *stubMovRepo) DeleteByItem(context.Context, string) (int64, error) { return 0, nil }

func (r *stubMovRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.moves)
}

// buildHandlerApp monta los handlers sin autenticación.
func buildHandlerApp(t *testing.T) (*fiber.App, *stubMovRepo) {
	t.Helper()
	items := &stubItemRepo{item: &entity.Item{ID: knownItemID, Name: "Kabel HDMI", Code: "KBL-01"}}
	moves := &stubMovRepo{}

	register := appinventory.NewRegisterMovementUseCase(items, moves)
	movementHandler := apphttp.NewMovementHandler(register, appinventory.NewLedgerUseCase(moves))
	itemHandler := apphttp.NewItemHandler(appinventory.NewItemUseCase(nil, items, moves), nil, nil, nil)

	app := fiber.New()
	app.Post("/movements/in", movementHandler.StockIn)
	app.Post("/movements/out", movementHandler.StockOut)
	app.Get("/items", itemHandler.List)
	app.Get("/items/:id", itemHandler.GetByID)
	app.Delete("/items/:id", itemHandler.Delete)
	return app, moves
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementHandler_ValidacionAntesDelStore(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
		code string
	}{
		{"cantidad cero", "/movements/in", `{"item_id":"` + knownItemID + `","quantity":0}`, "VALIDATION"},
		{"cantidad negativa", "/movements/out", `{"item_id":"` + knownItemID + `","quantity":-3}`, "VALIDATION"},
		{"sin artículo", "/movements/in", `{"quantity":2}`, "VALIDATION"},
		{"condición desconocida", "/movements/in", `{"item_id":"` + knownItemID + `","quantity":1,"condition":"Baru"}`, "VALIDATION"},
		{"cuerpo inválido", "/movements/in", `{"item_id":`, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, moves := buildHandlerApp(t)
			resp, raw := doJSON(t, app, http.MethodPost, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tc.code, body.Code)
			assert.Zero(t, moves.count(), "no debe insertarse ningún movimiento")
		})
	}
}

func TestMovementHandler_StockInRegistraConCondicionPorDefecto(t *testing.T) {
	app, moves := buildHandlerApp(t)
	resp, raw := doJSON(t, app, http.MethodPost, "/movements/in", `{"item_id":"`+knownItemID+`","quantity":4}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var body dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, entity.MovementTypeIn, body.Type)
	assert.Equal(t, 4, body.Quantity)
	require.NotNil(t, body.Condition)
	assert.Equal(t, entity.ConditionUsable, *body.Condition)
	assert.Equal(t, 1, moves.count())
}

func TestMovementHandler_StockOutArticuloInexistente(t *testing.T) {
	app, moves := buildHandlerApp(t)
	resp, raw := doJSON(t, app, http.MethodPost, "/movements/out",
		`{"item_id":"00000000-0000-0000-0000-0000000000aa","quantity":1,"reason":"Hilang"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")
	assert.Zero(t, moves.count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItemHandler_IDInvalido_Retorna400(t *testing.T) {
	app, _ := buildHandlerApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/items/no-es-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")

	resp, _ = doJSON(t, app, http.MethodDelete, "/items/no-es-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItemHandler_GetByIDInexistente_Retorna404(t *testing.T) {
	app, _ := buildHandlerApp(t)
	resp, raw := doJSON(t, app, http.MethodGet, "/items/00000000-0000-0000-0000-0000000000bb", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func TestItemHandler_ListFiltrosInvalidos(t *testing.T) {
	app, _ := buildHandlerApp(t)
	for _, q := range []string{"status=agotado", "sort=precio", "order=random"} {
		resp, raw := doJSON(t, app, http.MethodGet, "/items?"+q, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Contains(t, string(raw), "VALIDATION", q)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Router
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RutasProtegidasExigenToken(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	for _, path := range []string{"/api/items", "/api/movements/recent", "/api/dashboard/summary", "/api/reports/movements"} {
		resp, raw := doJSON(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Contains(t, string(raw), "MISSING_TOKEN", path)
	}
}

func TestRouter_RolAnonRechazado(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("Authorization", tokenForRole(t, "anon"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
