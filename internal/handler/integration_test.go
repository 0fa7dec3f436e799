//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/tablepos/api/internal/config"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/events"
	"github.com/tablepos/api/internal/idempotency"
	"github.com/tablepos/api/internal/router"
	"github.com/tablepos/api/internal/ws"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestIntegrationFlow runs an order through create, move, checkout and
// delete against a real PostgreSQL database, checking table status after
// every step.
func TestIntegrationFlow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	cfg := &config.Config{
		Port:        "8081",
		DatabaseURL: connStr,
		JWTSecret:   "integration-test-secret",
		CORSOrigins: []string{"http://localhost:5173"},
	}
	hub := ws.NewHub()
	go hub.Run(ctx)

	r := router.New(cfg, database.New(pool), pool, hub, events.Multi{hub}, idempotency.NewMemoryStore())
	server := httptest.NewServer(r)
	defer server.Close()

	api := &apiClient{t: t, server: server}

	// --- 1. Register tenant ---
	status, body, _ := api.do("POST", "/auth/register", map[string]interface{}{
		"email":    "owner@test.com",
		"password": "password123",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("register: status %d, body %v", status, body)
	}
	api.token = body["access_token"].(string)

	// --- 2. Catalog ---
	category := api.mustCreate("/categories", map[string]interface{}{"name": "Mains"})
	rice := api.mustCreate("/products", map[string]interface{}{
		"category_id": category["id"], "name": "Rice", "unit": "PORTION", "price": "20", "type": "STANDALONE",
	})
	tea := api.mustCreate("/products", map[string]interface{}{
		"category_id": category["id"], "name": "Tea", "unit": "PCS", "price": "15", "type": "BUNDLE_ITEM",
	})
	bundle := api.mustCreate("/products", map[string]interface{}{
		"category_id": category["id"], "name": "Rice + Tea", "unit": "PORTION", "price": "30", "type": "BUNDLE",
		"bundle_items": []map[string]interface{}{{"product_id": tea["id"], "quantity": 1}},
	})
	if items := bundle["bundle_items"].([]interface{}); len(items) != 1 {
		t.Fatalf("bundle items: got %v", bundle["bundle_items"])
	}
	vat := api.mustCreate("/taxes", map[string]interface{}{"name": "VAT", "rate": "7"})
	t1 := api.mustCreate("/tables", map[string]interface{}{"name": "T1"})
	t2 := api.mustCreate("/tables", map[string]interface{}{"name": "T2"})

	// --- 3. Tax preview ---
	status, quote, _ := api.do("POST", "/taxes/calculate", map[string]interface{}{
		"total_item_price": "40",
		"tax_ids":          []interface{}{vat["id"]},
	}, nil)
	if status != http.StatusOK || quote["before_rounding_tax"] != "42.8" || quote["rounding"] != "0.2" || quote["after_rounding_tax"] != "43" {
		t.Fatalf("tax preview: status %d, body %v", status, quote)
	}

	// --- 4. Create order on T1, replayed with the same idempotency key ---
	createBody := map[string]interface{}{
		"table_id":       t1["id"],
		"type":           "POSTPAID",
		"payment_method": "CASH",
		"tax_ids":        []interface{}{vat["id"]},
		"subtotal":       "40",
		"rounding":       "0.2",
		"total_price":    "43",
		"items": []map[string]interface{}{
			{"product_id": rice["id"], "quantity": 2, "price": "20"},
		},
	}
	idemHeader := map[string]string{"Idempotency-Key": "create-1"}
	status, order, _ := api.do("POST", "/orders", createBody, idemHeader)
	if status != http.StatusCreated {
		t.Fatalf("create order: status %d, body %v", status, order)
	}
	orderID := order["id"].(string)

	status, replay, hdr := api.do("POST", "/orders", createBody, idemHeader)
	if status != http.StatusCreated || replay["id"] != orderID || hdr.Get("Idempotent-Replayed") != "true" {
		t.Fatalf("replay: status %d, id %v, replayed %q", status, replay["id"], hdr.Get("Idempotent-Replayed"))
	}
	api.expectTableStatus(t1["id"], "OCCUPIED")

	// --- 5. Second order on the occupied table is refused ---
	status, body, _ = api.do("POST", "/orders", createBody, nil)
	if status != http.StatusConflict {
		t.Fatalf("create on occupied table: status %d, body %v", status, body)
	}

	// --- 6. Mismatched total is rejected ---
	bad := cloneBody(createBody)
	bad["table_id"] = t2["id"]
	bad["total_price"] = "44"
	status, body, _ = api.do("POST", "/orders", bad, nil)
	if status != http.StatusForbidden || body["error"] != "Total price does not match" {
		t.Fatalf("bad total: status %d, body %v", status, body)
	}
	api.expectTableStatus(t2["id"], "AVAILABLE")

	// --- 7. Edit: move to T2 and change items ---
	editBody := map[string]interface{}{
		"table_id":       t2["id"],
		"type":           "POSTPAID",
		"payment_method": "QRIS",
		"tax_ids":        []interface{}{vat["id"]},
		"subtotal":       "35",
		"rounding":       "0.55",
		"total_price":    "38",
		"items": []map[string]interface{}{
			{"product_id": rice["id"], "quantity": 1, "price": "20"},
			{"product_id": tea["id"], "quantity": 1, "price": "15"},
		},
	}
	status, edited, _ := api.do("PATCH", "/orders/"+orderID, editBody, nil)
	if status != http.StatusOK {
		t.Fatalf("edit order: status %d, body %v", status, edited)
	}
	if items := edited["items"].([]interface{}); len(items) != 2 {
		t.Fatalf("edited items: got %v", edited["items"])
	}
	api.expectTableStatus(t1["id"], "AVAILABLE")
	api.expectTableStatus(t2["id"], "OCCUPIED")

	// --- 8. Checkout releases the table ---
	status, done, _ := api.do("PATCH", "/orders/"+orderID+"/checkout", nil, nil)
	if status != http.StatusOK || done["status"] != "COMPLETED" || done["completed_at"] == nil {
		t.Fatalf("checkout: status %d, body %v", status, done)
	}
	api.expectTableStatus(t2["id"], "AVAILABLE")

	status, body, _ = api.do("PATCH", "/orders/"+orderID+"/cancel", nil, nil)
	if status != http.StatusForbidden {
		t.Fatalf("cancel completed order: status %d, body %v", status, body)
	}

	// --- 9. Concurrent creates on one AVAILABLE table: exactly one wins ---
	race := cloneBody(createBody)
	race["table_id"] = t1["id"]
	const racers = 5
	codes := make([]int, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code, err := api.post("/orders", race)
			if err != nil {
				t.Errorf("racer %d: %v", i, err)
				return
			}
			codes[i] = code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	if created != 1 || conflicts != racers-1 {
		t.Fatalf("concurrent creates: got %v, want one 201 and %d 409s", codes, racers-1)
	}
	api.expectTableStatus(t1["id"], "OCCUPIED")

	// --- 10. Reads ---
	status, list := api.list("/orders?status=COMPLETED")
	if status != http.StatusOK || len(list) != 1 {
		t.Fatalf("list completed: status %d, got %d orders", status, len(list))
	}

	// --- 11. Delete ---
	status, _, _ = api.do("DELETE", "/orders/"+orderID, nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("delete order: status %d", status)
	}
	status, _, _ = api.do("GET", "/orders/"+orderID, nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("get deleted order: status %d", status)
	}
}

// --- Container + migrations ---

func setupPostgresContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("pos"),
		tcpostgres.WithPassword("pos"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}

	return connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// Go test sets cwd to the package directory.
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}

// --- HTTP helpers ---

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *apiClient) send(method, path string, body interface{}, headers map[string]string) *http.Response {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	if err != nil {
		c.t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// post is safe to call from several goroutines: it reports failures as
// errors instead of stopping the test.
func (c *apiClient) post(path string, body interface{}) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest("POST", c.server.URL+path, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (c *apiClient) do(method, path string, body interface{}, headers map[string]string) (int, map[string]interface{}, http.Header) {
	c.t.Helper()
	resp := c.send(method, path, body, headers)
	defer resp.Body.Close()

	var result map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode, result, resp.Header
}

func (c *apiClient) list(path string) (int, []map[string]interface{}) {
	c.t.Helper()
	resp := c.send("GET", path, nil, nil)
	defer resp.Body.Close()

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.t.Fatalf("GET %s: decode response: %v", path, err)
	}
	return resp.StatusCode, result
}

func (c *apiClient) mustCreate(path string, body map[string]interface{}) map[string]interface{} {
	c.t.Helper()
	status, result, _ := c.do("POST", path, body, nil)
	if status != http.StatusCreated {
		c.t.Fatalf("POST %s: status %d, body %v", path, status, result)
	}
	return result
}

func (c *apiClient) expectTableStatus(id interface{}, want string) {
	c.t.Helper()
	status, table, _ := c.do("GET", "/tables/"+id.(string), nil, nil)
	if status != http.StatusOK {
		c.t.Fatalf("get table: status %d", status)
	}
	if table["status"] != want {
		c.t.Fatalf("table %s: status %v, want %s", table["name"], table["status"], want)
	}
}

func cloneBody(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
