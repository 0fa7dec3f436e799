package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/enum"
	"github.com/tablepos/api/internal/events"
	"github.com/tablepos/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, in service.OrderInput) (*service.OrderResult, error)
	EditOrder(ctx context.Context, userID, orderID uuid.UUID, in service.OrderInput) (*service.OrderResult, error)
	CheckoutOrder(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error)
	DeleteOrder(ctx context.Context, userID, orderID uuid.UUID) error
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListOrderTaxIDs(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error)
	ListOrderItemsByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error)
	ListOrderTaxesByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.ListOrderTaxesByOrdersRow, error)
}

// OrderHandler handles order endpoints. Mutations go through the order
// service; committed changes are announced on the publisher.
type OrderHandler struct {
	svc       OrderServicer
	store     OrderStore
	publisher events.Publisher
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, publisher events.Publisher) *OrderHandler {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderHandler{svc: svc, store: store, publisher: publisher}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders behind Authenticate. POST / is left to
// the caller so it can be wrapped with idempotency handling.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Edit)
	r.Patch("/{id}/checkout", h.Checkout)
	r.Patch("/{id}/cancel", h.Cancel)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type orderRequest struct {
	TableID       string             `json:"table_id"`
	Status        string             `json:"status"`
	Type          string             `json:"type"`
	PaymentMethod string             `json:"payment_method"`
	TaxIDs        []string           `json:"tax_ids"`
	Subtotal      string             `json:"subtotal"`
	Rounding      string             `json:"rounding"`
	TotalPrice    string             `json:"total_price"`
	Description   string             `json:"description"`
	Items         []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Price     string `json:"price"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	TableID       uuid.UUID           `json:"table_id"`
	Status        string              `json:"status"`
	Type          string              `json:"type"`
	PaymentMethod string              `json:"payment_method"`
	Subtotal      string              `json:"subtotal"`
	Rounding      string              `json:"rounding"`
	TotalPrice    string              `json:"total_price"`
	Description   *string             `json:"description"`
	TaxIDs        []uuid.UUID         `json:"tax_ids"`
	Items         []orderItemResponse `json:"items"`
	CompletedAt   *time.Time          `json:"completed_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type orderItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	Price     string    `json:"price"`
}

func toOrderResponse(o database.Order, items []database.OrderItem, taxIDs []uuid.UUID) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		TableID:       o.TableID,
		Status:        string(o.Status),
		Type:          string(o.Type),
		PaymentMethod: string(o.PaymentMethod),
		Subtotal:      numericToString(o.Subtotal),
		Rounding:      numericToString(o.Rounding),
		TotalPrice:    numericToString(o.TotalPrice),
		TaxIDs:        taxIDs,
		Items:         make([]orderItemResponse, len(items)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if resp.TaxIDs == nil {
		resp.TaxIDs = []uuid.UUID{}
	}
	for i, it := range items {
		resp.Items[i] = orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     numericToString(it.Price),
		}
	}
	if o.Description.Valid {
		resp.Description = &o.Description.String
	}
	if o.CompletedAt.Valid {
		resp.CompletedAt = &o.CompletedAt.Time
	}
	return resp
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	in, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), userID, in)
	if err != nil {
		writeOrderError(w, "create order", err)
		return
	}

	resp := toOrderResponse(result.Order, result.Items, result.TaxIDs)
	h.publish(r.Context(), enum.EventOrderCreated, userID, result.Order.ID, resp)
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /orders, optionally filtered by ?status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	params := database.ListOrdersParams{UserID: userID}
	if s := r.URL.Query().Get("status"); s != "" {
		switch s {
		case enum.OrderStatusPending, enum.OrderStatusCompleted, enum.OrderStatusCanceled:
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		params.Status = database.NullOrderStatus{OrderStatus: database.OrderStatus(s), Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp, err := h.loadDetails(r.Context(), orders)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	orderID, ok := urlID(w, r, "order")
	if !ok {
		return
	}

	order, err := h.store.GetOrder(r.Context(), database.GetOrderParams{ID: orderID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp, err := h.loadDetail(r.Context(), order)
	if err != nil {
		log.Printf("ERROR: load order %s: %v", order.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Edit handles PATCH /orders/{id}.
func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	orderID, ok := urlID(w, r, "order")
	if !ok {
		return
	}

	in, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	result, err := h.svc.EditOrder(r.Context(), userID, orderID, in)
	if err != nil {
		writeOrderError(w, "edit order", err)
		return
	}

	resp := toOrderResponse(result.Order, result.Items, result.TaxIDs)
	h.publish(r.Context(), enum.EventOrderUpdated, userID, orderID, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Checkout handles PATCH /orders/{id}/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, "checkout order", enum.EventOrderCompleted, h.svc.CheckoutOrder)
}

// Cancel handles PATCH /orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, "cancel order", enum.EventOrderCanceled, h.svc.CancelOrder)
}

func (h *OrderHandler) close(w http.ResponseWriter, r *http.Request, op, eventType string,
	fn func(ctx context.Context, userID, orderID uuid.UUID) (*service.OrderResult, error)) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	orderID, ok := urlID(w, r, "order")
	if !ok {
		return
	}

	result, err := fn(r.Context(), userID, orderID)
	if err != nil {
		writeOrderError(w, op, err)
		return
	}

	resp := toOrderResponse(result.Order, result.Items, result.TaxIDs)
	h.publish(r.Context(), eventType, userID, orderID, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /orders/{id}. The order's table is left as is.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	orderID, ok := urlID(w, r, "order")
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(r.Context(), userID, orderID); err != nil {
		writeOrderError(w, "delete order", err)
		return
	}

	h.publish(r.Context(), enum.EventOrderDeleted, userID, orderID, map[string]uuid.UUID{"id": orderID})
	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func (h *OrderHandler) loadDetail(ctx context.Context, o database.Order) (orderResponse, error) {
	items, err := h.store.ListOrderItemsByOrder(ctx, o.ID)
	if err != nil {
		return orderResponse{}, fmt.Errorf("list items: %w", err)
	}
	taxIDs, err := h.store.ListOrderTaxIDs(ctx, o.ID)
	if err != nil {
		return orderResponse{}, fmt.Errorf("list tax ids: %w", err)
	}
	return toOrderResponse(o, items, taxIDs), nil
}

// loadDetails attaches items and tax ids to a page of orders with one query
// each, regardless of how many orders there are.
func (h *OrderHandler) loadDetails(ctx context.Context, orders []database.Order) ([]orderResponse, error) {
	resp := make([]orderResponse, 0, len(orders))
	if len(orders) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := h.store.ListOrderItemsByOrders(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	itemsByOrder := make(map[uuid.UUID][]database.OrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	taxes, err := h.store.ListOrderTaxesByOrders(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list tax ids: %w", err)
	}
	taxesByOrder := make(map[uuid.UUID][]uuid.UUID, len(orders))
	for _, t := range taxes {
		taxesByOrder[t.OrderID] = append(taxesByOrder[t.OrderID], t.TaxID)
	}

	for _, o := range orders {
		resp = append(resp, toOrderResponse(o, itemsByOrder[o.ID], taxesByOrder[o.ID]))
	}
	return resp, nil
}

// publish announces a committed change. Failures are logged only; the
// mutation has already succeeded.
func (h *OrderHandler) publish(ctx context.Context, eventType string, userID, orderID uuid.UUID, payload any) {
	env, err := events.NewEnvelope(eventType, userID, orderID, payload)
	if err != nil {
		log.Printf("ERROR: build %s event: %v", eventType, err)
		return
	}
	if err := h.publisher.Publish(context.WithoutCancel(ctx), env); err != nil {
		log.Printf("ERROR: publish %s for order %s: %v", eventType, orderID, err)
	}
}

func decodeOrderRequest(w http.ResponseWriter, r *http.Request) (service.OrderInput, bool) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return service.OrderInput{}, false
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table_id"})
		return service.OrderInput{}, false
	}

	taxIDs, ok := parseTaxIDs(w, req.TaxIDs)
	if !ok {
		return service.OrderInput{}, false
	}

	amounts := [3]decimal.Decimal{}
	for i, f := range []struct{ name, value string }{
		{"subtotal", req.Subtotal},
		{"rounding", req.Rounding},
		{"total_price", req.TotalPrice},
	} {
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + f.name})
			return service.OrderInput{}, false
		}
		amounts[i] = d
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("items[%d]: invalid product_id", i)})
			return service.OrderInput{}, false
		}
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("items[%d]: invalid price", i)})
			return service.OrderInput{}, false
		}
		items[i] = service.OrderItemInput{ProductID: productID, Quantity: it.Quantity, Price: price}
	}

	return service.OrderInput{
		TableID:       tableID,
		Status:        req.Status,
		Type:          database.OrderType(req.Type),
		PaymentMethod: database.PaymentMethod(req.PaymentMethod),
		TaxIDs:        taxIDs,
		Subtotal:      amounts[0],
		Rounding:      amounts[1],
		TotalPrice:    amounts[2],
		Description:   req.Description,
		Items:         items,
	}, true
}

// writeOrderError maps an order pipeline error to its HTTP status. Clients
// only see the classified message; any wrapping context goes to the log.
// Anything unclassified is logged and reported as a 500.
func writeOrderError(w http.ResponseWriter, op string, err error) {
	var e *service.Error
	if !errors.As(err, &e) {
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	var status int
	switch e.Kind {
	case service.KindInvalid:
		status = http.StatusBadRequest
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindRejected:
		status = http.StatusForbidden
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if err.Error() != e.Msg {
		log.Printf("%s: %v", op, err)
	}
	writeJSON(w, status, map[string]string{"error": e.Msg})
}
