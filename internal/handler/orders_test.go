package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/events"
	"github.com/tablepos/api/internal/handler"
	"github.com/tablepos/api/internal/service"
)

// --- Mock service ---

type mockOrderService struct {
	createFn   func(ctx context.Context, userID uuid.UUID, in service.OrderInput) (*service.OrderResult, error)
	editFn     func(ctx context.Context, userID, orderID uuid.UUID, in service.OrderInput) (*service.OrderResult, error)
	checkoutFn func(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error)
	cancelFn   func(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error)
	deleteFn   func(ctx context.Context, userID, orderID uuid.UUID) error
}

func (m *mockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, in service.OrderInput) (*service.OrderResult, error) {
	return m.createFn(ctx, userID, in)
}

func (m *mockOrderService) EditOrder(ctx context.Context, userID, orderID uuid.UUID, in service.OrderInput) (*service.OrderResult, error) {
	return m.editFn(ctx, userID, orderID, in)
}

func (m *mockOrderService) CheckoutOrder(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error) {
	return m.checkoutFn(ctx, userID, orderID)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error) {
	return m.cancelFn(ctx, userID, orderID)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	return m.deleteFn(ctx, userID, orderID)
}

// --- Mock store ---

type mockOrderStore struct {
	orders map[uuid.UUID]database.Order
	items  map[uuid.UUID][]database.OrderItem
	taxIDs map[uuid.UUID][]uuid.UUID

	perOrderReads int
	bulkReads     int
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{
		orders: make(map[uuid.UUID]database.Order),
		items:  make(map[uuid.UUID][]database.OrderItem),
		taxIDs: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *mockOrderStore) GetOrder(_ context.Context, arg database.GetOrderParams) (database.Order, error) {
	o, ok := m.orders[arg.ID]
	if !ok || o.UserID != arg.UserID {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *mockOrderStore) ListOrders(_ context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
	var result []database.Order
	for _, o := range m.orders {
		if o.UserID != arg.UserID {
			continue
		}
		if arg.Status.Valid && o.Status != arg.Status.OrderStatus {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (m *mockOrderStore) ListOrderItemsByOrder(_ context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	m.perOrderReads++
	return m.items[orderID], nil
}

func (m *mockOrderStore) ListOrderTaxIDs(_ context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	m.perOrderReads++
	return m.taxIDs[orderID], nil
}

func (m *mockOrderStore) ListOrderItemsByOrders(_ context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error) {
	m.bulkReads++
	var result []database.OrderItem
	for _, id := range orderIds {
		result = append(result, m.items[id]...)
	}
	return result, nil
}

func (m *mockOrderStore) ListOrderTaxesByOrders(_ context.Context, orderIds []uuid.UUID) ([]database.ListOrderTaxesByOrdersRow, error) {
	m.bulkReads++
	var result []database.ListOrderTaxesByOrdersRow
	for _, id := range orderIds {
		for _, taxID := range m.taxIDs[id] {
			result = append(result, database.ListOrderTaxesByOrdersRow{OrderID: id, TaxID: taxID})
		}
	}
	return result, nil
}

// --- Recording publisher ---

type recordingPublisher struct {
	envelopes []events.Envelope
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, env events.Envelope) error {
	p.envelopes = append(p.envelopes, env)
	return p.err
}

// --- Helpers ---

func setupOrderRouter(svc *mockOrderService, store *mockOrderStore, pub events.Publisher) *chi.Mux {
	h := handler.NewOrderHandler(svc, store, pub)
	return authedRouter("/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		h.RegisterRoutes(r)
	})
}

func makeOrder(userID uuid.UUID, status database.OrderStatus) database.Order {
	return database.Order{
		ID:            uuid.New(),
		UserID:        userID,
		TableID:       uuid.New(),
		Status:        status,
		Type:          database.OrderTypePOSTPAID,
		PaymentMethod: database.PaymentMethodCASH,
		Subtotal:      testNumeric("40"),
		Rounding:      testNumeric("0.2"),
		TotalPrice:    testNumeric("43"),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func resultFor(o database.Order) *service.OrderResult {
	return &service.OrderResult{
		Order: o,
		Items: []database.OrderItem{{ID: uuid.New(), OrderID: o.ID, ProductID: uuid.New(), Quantity: 2, Price: testNumeric("20")}},
	}
}

func validOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"table_id":       uuid.New().String(),
		"type":           "POSTPAID",
		"payment_method": "CASH",
		"tax_ids":        []string{},
		"subtotal":       "40",
		"rounding":       "0.2",
		"total_price":    "43",
		"items": []map[string]interface{}{
			{"product_id": uuid.New().String(), "quantity": 2, "price": "20"},
		},
	}
}

// --- Create ---

func TestOrderCreate_Valid(t *testing.T) {
	userID := uuid.New()
	pub := &recordingPublisher{}
	var got service.OrderInput
	svc := &mockOrderService{
		createFn: func(_ context.Context, uid uuid.UUID, in service.OrderInput) (*service.OrderResult, error) {
			if uid != userID {
				t.Errorf("expected tenant %s, got %s", userID, uid)
			}
			got = in
			o := makeOrder(uid, database.OrderStatusPENDING)
			o.TableID = in.TableID
			return resultFor(o), nil
		},
	}

	body := validOrderBody()
	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "POST", "/orders", body, userID)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.TableID.String() != body["table_id"] {
		t.Errorf("expected table_id %v, got %s", body["table_id"], got.TableID)
	}
	if got.Rounding.String() != "0.2" || got.TotalPrice.String() != "43" {
		t.Errorf("expected rounding 0.2 and total 43, got %s and %s", got.Rounding, got.TotalPrice)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 || got.Items[0].Price.String() != "20" {
		t.Errorf("unexpected items: %+v", got.Items)
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != "PENDING" {
		t.Errorf("expected PENDING, got %v", resp["status"])
	}
	if resp["total_price"] != "43.00" {
		t.Errorf("expected total_price 43.00, got %v", resp["total_price"])
	}

	if len(pub.envelopes) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.envelopes))
	}
	env := pub.envelopes[0]
	if env.EventType != "order.created" || env.TenantID != userID {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if env.CorrelationID != resp["id"] {
		t.Errorf("expected correlation id %v, got %s", resp["id"], env.CorrelationID)
	}
}

func TestOrderCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"empty items", service.ErrEmptyItems, http.StatusBadRequest, "items are required"},
		{"missing table", service.ErrTableNotFound, http.StatusNotFound, "Table does not exist."},
		{"subtotal mismatch", service.ErrSubtotalMismatch, http.StatusForbidden, "Subtotal price does not match"},
		{"wrapped item error", fmt.Errorf("item[1]: %w", service.ErrInvalidOrderItem), http.StatusForbidden, "Invalid order item found"},
		{"occupied table", &service.Error{Kind: service.KindConflict, Msg: "table T1 is occupied"}, http.StatusConflict, "table T1 is occupied"},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			svc := &mockOrderService{
				createFn: func(context.Context, uuid.UUID, service.OrderInput) (*service.OrderResult, error) {
					return nil, tt.err
				},
			}

			rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "POST", "/orders", validOrderBody(), uuid.New())

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if resp := decodeResponse(t, rr); resp["error"] != tt.wantError {
				t.Errorf("expected %q, got %v", tt.wantError, resp["error"])
			}
			if len(pub.envelopes) != 0 {
				t.Errorf("expected no events on failure, got %d", len(pub.envelopes))
			}
		})
	}
}

func TestOrderCreate_MalformedFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b map[string]interface{})
		wantError string
	}{
		{"bad table id", func(b map[string]interface{}) { b["table_id"] = "t1" }, "invalid table_id"},
		{"bad subtotal", func(b map[string]interface{}) { b["subtotal"] = "forty" }, "invalid subtotal"},
		{"missing total", func(b map[string]interface{}) { delete(b, "total_price") }, "invalid total_price"},
		{"bad tax id", func(b map[string]interface{}) { b["tax_ids"] = []string{"vat"} }, "invalid tax_ids"},
		{"bad product id", func(b map[string]interface{}) {
			b["items"] = []map[string]interface{}{{"product_id": "x", "quantity": 1, "price": "1"}}
		}, "items[0]: invalid product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOrderService{
				createFn: func(context.Context, uuid.UUID, service.OrderInput) (*service.OrderResult, error) {
					t.Fatal("service should not be called")
					return nil, nil
				},
			}
			body := validOrderBody()
			tt.mutate(body)

			rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), nil), "POST", "/orders", body, uuid.New())

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			if resp := decodeResponse(t, rr); resp["error"] != tt.wantError {
				t.Errorf("expected %q, got %v", tt.wantError, resp["error"])
			}
		})
	}
}

func TestOrderCreate_DuplicateTaxIDsReachService(t *testing.T) {
	taxID := uuid.New().String()
	var gotTaxes int
	svc := &mockOrderService{
		createFn: func(_ context.Context, _ uuid.UUID, in service.OrderInput) (*service.OrderResult, error) {
			gotTaxes = len(in.TaxIDs)
			return nil, service.ErrInvalidTax
		},
	}
	body := validOrderBody()
	body["tax_ids"] = []string{taxID, taxID}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), nil), "POST", "/orders", body, uuid.New())

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if gotTaxes != 2 {
		t.Errorf("expected both tax ids forwarded, got %d", gotTaxes)
	}
}

func TestOrderCreate_PublishFailureStillSucceeds(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := &mockOrderService{
		createFn: func(_ context.Context, uid uuid.UUID, _ service.OrderInput) (*service.OrderResult, error) {
			return resultFor(makeOrder(uid, database.OrderStatusPENDING)), nil
		},
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "POST", "/orders", validOrderBody(), uuid.New())

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
}

func TestOrderCreate_Unauthenticated(t *testing.T) {
	rr := doRequest(t, setupOrderRouter(&mockOrderService{}, newMockOrderStore(), nil), "POST", "/orders", validOrderBody())

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

// --- Reads ---

func TestOrderList_FiltersByStatus(t *testing.T) {
	store := newMockOrderStore()
	userID := uuid.New()
	pending := makeOrder(userID, database.OrderStatusPENDING)
	done := makeOrder(userID, database.OrderStatusCOMPLETED)
	other := makeOrder(uuid.New(), database.OrderStatusPENDING)
	for _, o := range []database.Order{pending, done, other} {
		store.orders[o.ID] = o
	}

	router := setupOrderRouter(&mockOrderService{}, store, nil)

	rr := doAuthRequest(t, router, "GET", "/orders", nil, userID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if list := decodeListResponse(t, rr); len(list) != 2 {
		t.Errorf("expected 2 orders, got %d", len(list))
	}

	rr = doAuthRequest(t, router, "GET", "/orders?status=PENDING", nil, userID)
	list := decodeListResponse(t, rr)
	if len(list) != 1 || list[0]["id"] != pending.ID.String() {
		t.Errorf("expected only the pending order, got %v", list)
	}
}

func TestOrderList_LoadsDetailsInBulk(t *testing.T) {
	store := newMockOrderStore()
	userID := uuid.New()
	taxID := uuid.New()
	for i := 0; i < 3; i++ {
		o := makeOrder(userID, database.OrderStatusPENDING)
		store.orders[o.ID] = o
		store.items[o.ID] = resultFor(o).Items
		store.taxIDs[o.ID] = []uuid.UUID{taxID}
	}

	rr := doAuthRequest(t, setupOrderRouter(&mockOrderService{}, store, nil), "GET", "/orders", nil, userID)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if store.perOrderReads != 0 || store.bulkReads != 2 {
		t.Errorf("reads: got %d per-order and %d bulk, want 0 and 2", store.perOrderReads, store.bulkReads)
	}
	for _, o := range decodeListResponse(t, rr) {
		items, _ := o["items"].([]interface{})
		taxes, _ := o["tax_ids"].([]interface{})
		if len(items) != 1 || len(taxes) != 1 {
			t.Errorf("order %v: got %d items and %d taxes, want 1 and 1", o["id"], len(items), len(taxes))
			continue
		}
		if item := items[0].(map[string]interface{}); item["id"] != store.items[uuid.MustParse(o["id"].(string))][0].ID.String() {
			t.Errorf("order %v: item belongs to another order", o["id"])
		}
	}
}

func TestOrderList_Empty(t *testing.T) {
	store := newMockOrderStore()
	rr := doAuthRequest(t, setupOrderRouter(&mockOrderService{}, store, nil), "GET", "/orders", nil, uuid.New())

	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected 200 with [], got %d %s", rr.Code, rr.Body.String())
	}
	if store.bulkReads != 0 {
		t.Errorf("expected no detail reads for an empty page, got %d", store.bulkReads)
	}
}

func TestOrderList_InvalidStatus(t *testing.T) {
	rr := doAuthRequest(t, setupOrderRouter(&mockOrderService{}, newMockOrderStore(), nil), "GET", "/orders?status=OPEN", nil, uuid.New())

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestOrderGet_IncludesItemsAndTaxes(t *testing.T) {
	store := newMockOrderStore()
	userID := uuid.New()
	o := makeOrder(userID, database.OrderStatusCOMPLETED)
	o.CompletedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	store.orders[o.ID] = o
	store.items[o.ID] = resultFor(o).Items
	taxID := uuid.New()
	store.taxIDs[o.ID] = []uuid.UUID{taxID}

	rr := doAuthRequest(t, setupOrderRouter(&mockOrderService{}, store, nil), "GET", "/orders/"+o.ID.String(), nil, userID)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	items, _ := resp["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %v", resp["items"])
	}
	taxes, _ := resp["tax_ids"].([]interface{})
	if len(taxes) != 1 || taxes[0] != taxID.String() {
		t.Errorf("expected tax id %s, got %v", taxID, resp["tax_ids"])
	}
	if resp["completed_at"] == nil {
		t.Error("expected completed_at to be set")
	}
}

func TestOrderGet_OtherTenantIsNotFound(t *testing.T) {
	store := newMockOrderStore()
	o := makeOrder(uuid.New(), database.OrderStatusPENDING)
	store.orders[o.ID] = o

	rr := doAuthRequest(t, setupOrderRouter(&mockOrderService{}, store, nil), "GET", "/orders/"+o.ID.String(), nil, uuid.New())

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

// --- Edit / Checkout / Cancel / Delete ---

func TestOrderEdit_Valid(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	pub := &recordingPublisher{}
	svc := &mockOrderService{
		editFn: func(_ context.Context, uid, oid uuid.UUID, in service.OrderInput) (*service.OrderResult, error) {
			if oid != orderID {
				t.Errorf("expected order %s, got %s", orderID, oid)
			}
			o := makeOrder(uid, database.OrderStatusPENDING)
			o.ID = oid
			return resultFor(o), nil
		},
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "PATCH", "/orders/"+orderID.String(), validOrderBody(), userID)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(pub.envelopes) != 1 || pub.envelopes[0].EventType != "order.updated" {
		t.Errorf("expected order.updated event, got %+v", pub.envelopes)
	}
}

func TestOrderEdit_MoveToOccupiedTable(t *testing.T) {
	svc := &mockOrderService{
		editFn: func(context.Context, uuid.UUID, uuid.UUID, service.OrderInput) (*service.OrderResult, error) {
			return nil, &service.Error{Kind: service.KindConflict, Msg: "Cannot move to T2, it is already occupied."}
		},
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), nil), "PATCH", "/orders/"+uuid.New().String(), validOrderBody(), uuid.New())

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestOrderCheckout_Valid(t *testing.T) {
	userID := uuid.New()
	pub := &recordingPublisher{}
	svc := &mockOrderService{
		checkoutFn: func(_ context.Context, uid, oid uuid.UUID) (*service.OrderResult, error) {
			o := makeOrder(uid, database.OrderStatusCOMPLETED)
			o.ID = oid
			o.CompletedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
			return resultFor(o), nil
		},
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "PATCH", "/orders/"+uuid.New().String()+"/checkout", nil, userID)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if resp := decodeResponse(t, rr); resp["status"] != "COMPLETED" {
		t.Errorf("expected COMPLETED, got %v", resp["status"])
	}
	if len(pub.envelopes) != 1 || pub.envelopes[0].EventType != "order.completed" {
		t.Errorf("expected order.completed event, got %+v", pub.envelopes)
	}
}

func TestOrderCheckout_AlreadyClosed(t *testing.T) {
	svc := &mockOrderService{
		checkoutFn: func(context.Context, uuid.UUID, uuid.UUID) (*service.OrderResult, error) {
			return nil, service.ErrOrderClosed
		},
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), nil), "PATCH", "/orders/"+uuid.New().String()+"/checkout", nil, uuid.New())

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp["error"] != "Invalid data: Order is already COMPLETED or CANCELED" {
		t.Errorf("unexpected error: %v", resp["error"])
	}
}

func TestOrderCancel_Valid(t *testing.T) {
	pub := &recordingPublisher{}
	svc := &mockOrderService{
		cancelFn: func(_ context.Context, uid, oid uuid.UUID) (*service.OrderResult, error) {
			o := makeOrder(uid, database.OrderStatusCANCELED)
			o.ID = oid
			return resultFor(o), nil
		},
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "PATCH", "/orders/"+uuid.New().String()+"/cancel", nil, uuid.New())

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(pub.envelopes) != 1 || pub.envelopes[0].EventType != "order.canceled" {
		t.Errorf("expected order.canceled event, got %+v", pub.envelopes)
	}
}

func TestOrderDelete_Valid(t *testing.T) {
	orderID := uuid.New()
	pub := &recordingPublisher{}
	svc := &mockOrderService{
		deleteFn: func(context.Context, uuid.UUID, uuid.UUID) error { return nil },
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), pub), "DELETE", "/orders/"+orderID.String(), nil, uuid.New())

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if len(pub.envelopes) != 1 || pub.envelopes[0].EventType != "order.deleted" {
		t.Fatalf("expected order.deleted event, got %+v", pub.envelopes)
	}
	if pub.envelopes[0].CorrelationID != orderID.String() {
		t.Errorf("expected correlation id %s, got %s", orderID, pub.envelopes[0].CorrelationID)
	}
}

func TestOrderDelete_NotFound(t *testing.T) {
	svc := &mockOrderService{
		deleteFn: func(context.Context, uuid.UUID, uuid.UUID) error { return service.ErrOrderNotFound },
	}

	rr := doAuthRequest(t, setupOrderRouter(svc, newMockOrderStore(), nil), "DELETE", "/orders/"+uuid.New().String(), nil, uuid.New())

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestOrderDelete_InvalidID(t *testing.T) {
	rr := doAuthRequest(t, setupOrderRouter(&mockOrderService{}, newMockOrderStore(), nil), "DELETE", "/orders/123", nil, uuid.New())

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
