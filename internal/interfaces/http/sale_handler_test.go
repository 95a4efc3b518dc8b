package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookstore-api/internal/application/sales"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bookstore-api/internal/interfaces/http"
	"github.com/jhoicas/bookstore-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const saleBody = `{"id_client":123,"saleDetails":[` +
	`{"book_id":456,"quantity":2,"unit_price":19.99},` +
	`{"book_id":457,"quantity":1,"unit_price":5.00}]}`

// buildSalesApp monta el router completo sobre el almacén en memoria.
func buildSalesApp(store *memory.Store, opts sales.Options) *fiber.App {
	uc := sales.NewSaleUseCase(store, store, store.Books(), nil, sales.SystemClock{}, sales.UUIDGenerator{}, opts)
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		SaleUC:    uc,
		JWTSecret: testJWTSecret,
		Log:       log,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// createSale registra la venta de saleBody y devuelve su id.
func createSale(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/sales", saleBody, bearer(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	sale, ok := body["sale"].(map[string]any)
	require.True(t, ok, "la respuesta debe incluir la venta")
	return sale["id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sales
// ──────────────────────────────────────────────────────────────────────────────

func TestStoreSale_CreaVentaConTotalCalculado(t *testing.T) {
	store := memory.NewStore()
	app := buildSalesApp(store, sales.Options{})

	resp := doRequest(t, app, http.MethodPost, "/api/sales", saleBody, bearer(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)

	assert.EqualValues(t, 200, body["code"])
	assert.Equal(t, "Sale created successfully", body["message"])
	sale := body["sale"].(map[string]any)
	assert.Equal(t, "44.98", sale["total"])
	assert.EqualValues(t, 123, sale["id_client"])
	details := sale["sale_detail"].([]any)
	require.Len(t, details, 2)
	assert.EqualValues(t, 456, details[0].(map[string]any)["id_book"], "las líneas conservan el orden de entrada")
	assert.EqualValues(t, 457, details[1].(map[string]any)["id_book"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	assert.Equal(t, 1, store.SaleCount())
	assert.Equal(t, 2, store.DetailCount())
}

func TestStoreSale_FalloEnDetalleRetorna500SinFilas(t *testing.T) {
	store := memory.NewStore()
	store.InjectFault(memory.FailOnCall(memory.OpCreateDetail, 2, errors.New("conexión perdida")))
	app := buildSalesApp(store, sales.Options{})

	resp := doRequest(t, app, http.MethodPost, "/api/sales", saleBody, bearer(t))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeMap(t, resp)

	assert.EqualValues(t, 500, body["code"])
	assert.Equal(t, "Sale creation failed", body["message"])
	assert.Contains(t, body["error"], "conexión perdida")
	assert.Equal(t, 0, store.SaleCount(), "no debe quedar la cabecera de la venta")
	assert.Equal(t, 0, store.DetailCount())
}

func TestStoreSale_Validacion(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"json inválido", `{"id_client":`},
		{"cantidad cero", `{"id_client":1,"saleDetails":[{"book_id":1,"quantity":0,"unit_price":1}]}`},
		{"precio negativo", `{"id_client":1,"saleDetails":[{"book_id":1,"quantity":1,"unit_price":-1}]}`},
		{"sin libro", `{"id_client":1,"saleDetails":[{"book_id":0,"quantity":1,"unit_price":1}]}`},
		{"tres decimales", `{"id_client":1,"saleDetails":[{"book_id":1,"quantity":1,"unit_price":1.005}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			app := buildSalesApp(store, sales.Options{})
			resp := doRequest(t, app, http.MethodPost, "/api/sales", tc.body, bearer(t))
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, 0, store.SaleCount())
		})
	}
}

func TestStoreSale_LibroInexistenteConVerificacion_Retorna404(t *testing.T) {
	store := memory.NewStore()
	store.AddBook(&entity.Book{ID: 456, Title: "Cien años de soledad"})
	app := buildSalesApp(store, sales.Options{VerifyBooks: true})

	resp := doRequest(t, app, http.MethodPost, "/api/sales", saleBody, bearer(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Book not found", body["message"])
	assert.Equal(t, 0, store.SaleCount())
}

func TestStoreSale_SinToken_Retorna401(t *testing.T) {
	store := memory.NewStore()
	app := buildSalesApp(store, sales.Options{})

	resp := doRequest(t, app, http.MethodPost, "/api/sales", saleBody, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, store.SaleCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestIndexSales_ListaPlanaConDetalles(t *testing.T) {
	app := buildSalesApp(memory.NewStore(), sales.Options{})
	createSale(t, app)

	resp := doGet(t, app, "/api/sales", bearer(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Len(t, list[0]["sale_detail"], 2)
}

func TestShowSale_EncontradaYNoEncontrada(t *testing.T) {
	app := buildSalesApp(memory.NewStore(), sales.Options{})
	id := createSale(t, app)

	resp := doGet(t, app, "/api/sales/search?id_sale="+id, bearer(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Sale found successfully", body["message"])
	assert.Equal(t, id, body["sale"].(map[string]any)["id"])

	resp = doGet(t, app, "/api/sales/search?id_sale=no-existe", bearer(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Sale not found", decodeMap(t, resp)["message"])
}

func TestShowByUser_SinVentasDevuelveListaVacia(t *testing.T) {
	app := buildSalesApp(memory.NewStore(), sales.Options{})
	createSale(t, app)

	resp := doGet(t, app, "/api/sales/user?id_user=999", bearer(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "Sale found successfully", body["message"])
	list, ok := body["sales"].([]any)
	require.True(t, ok, "sales debe ser un array, no null")
	assert.Empty(t, list)

	resp = doGet(t, app, "/api/sales/user?id_user=123", bearer(t))
	assert.Len(t, decodeMap(t, resp)["sales"], 1)
}

func TestShowByUser_IdInvalido_Retorna404(t *testing.T) {
	app := buildSalesApp(memory.NewStore(), sales.Options{})
	for _, path := range []string{"/api/sales/user", "/api/sales/user?id_user=abc"} {
		resp := doGet(t, app, path, bearer(t))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Sale not found", decodeMap(t, resp)["message"])
	}
}

func TestDeleteSale_EliminaYLuego404(t *testing.T) {
	store := memory.NewStore()
	app := buildSalesApp(store, sales.Options{})
	id := createSale(t, app)

	resp := doRequest(t, app, http.MethodDelete, "/api/sales/delete?id="+id, "", bearer(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.EqualValues(t, 200, body["code"])
	assert.Equal(t, "Sale deleted successfully", body["message"])
	assert.Equal(t, 0, store.SaleCount())
	assert.Equal(t, 0, store.DetailCount(), "las líneas se borran en cascada")

	resp = doRequest(t, app, http.MethodDelete, "/api/sales/delete?id="+id, "", bearer(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestReceipt_SinRenderer_Retorna500(t *testing.T) {
	app := buildSalesApp(memory.NewStore(), sales.Options{})
	id := createSale(t, app)

	resp := doGet(t, app, "/api/sales/receipt?id_sale="+id, bearer(t))
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
