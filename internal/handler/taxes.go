package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/service"
)

// TaxStore defines the database methods needed by tax handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type TaxStore interface {
	ListTaxes(ctx context.Context, userID uuid.UUID) ([]database.Tax, error)
	GetTax(ctx context.Context, arg database.GetTaxParams) (database.Tax, error)
	CreateTax(ctx context.Context, arg database.CreateTaxParams) (database.Tax, error)
	UpdateTax(ctx context.Context, arg database.UpdateTaxParams) (database.Tax, error)
	DeleteTax(ctx context.Context, arg database.DeleteTaxParams) (uuid.UUID, error)
}

// TaxQuoter prices an item total against a tenant's tax rules.
// Satisfied by *service.TaxCalculator.
type TaxQuoter interface {
	Calculate(ctx context.Context, userID uuid.UUID, totalItemPrice decimal.Decimal, taxIDs []uuid.UUID) (service.TaxBreakdown, error)
}

// TaxHandler handles tax rule CRUD and the tax preview endpoint.
type TaxHandler struct {
	store TaxStore
	quote TaxQuoter
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(store TaxStore, quote TaxQuoter) *TaxHandler {
	return &TaxHandler{store: store, quote: quote}
}

// RegisterRoutes registers tax endpoints. Expected to be mounted at /taxes
// behind Authenticate.
func (h *TaxHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/calculate", h.Calculate)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type taxRequest struct {
	Name        string `json:"name"`
	Rate        string `json:"rate"`
	IsFixed     bool   `json:"is_fixed"`
	IsInclusive bool   `json:"is_inclusive"`
	Description string `json:"description"`
}

type taxResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Rate        string    `json:"rate"`
	IsFixed     bool      `json:"is_fixed"`
	IsInclusive bool      `json:"is_inclusive"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type calculateTaxRequest struct {
	TotalItemPrice string   `json:"total_item_price"`
	TaxIDs         []string `json:"tax_ids"`
}

func toTaxResponse(t database.Tax) taxResponse {
	resp := taxResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		Rate:        numericToString(t.Rate),
		IsFixed:     t.IsFixed,
		IsInclusive: t.IsInclusive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Description.Valid {
		resp.Description = &t.Description.String
	}
	return resp
}

func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	taxes, err := h.store.ListTaxes(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: list taxes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]taxResponse, len(taxes))
	for i, t := range taxes {
		resp[i] = toTaxResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TaxHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	taxID, ok := urlID(w, r, "tax")
	if !ok {
		return
	}

	tax, err := h.store.GetTax(r.Context(), database.GetTaxParams{ID: taxID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "tax not found"})
			return
		}
		log.Printf("ERROR: get tax: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toTaxResponse(tax))
}

func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	req, ok := decodeTaxRequest(w, r)
	if !ok {
		return
	}
	rate, err := parseMoney(req.Rate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rate must be a decimal >= 0"})
		return
	}

	tax, err := h.store.CreateTax(r.Context(), database.CreateTaxParams{
		UserID:      userID,
		Name:        req.Name,
		Rate:        rate,
		IsFixed:     req.IsFixed,
		IsInclusive: req.IsInclusive,
		Description: database.Text(req.Description),
	})
	if err != nil {
		log.Printf("ERROR: create tax: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toTaxResponse(tax))
}

func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	taxID, ok := urlID(w, r, "tax")
	if !ok {
		return
	}

	req, ok := decodeTaxRequest(w, r)
	if !ok {
		return
	}
	rate, err := parseMoney(req.Rate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rate must be a decimal >= 0"})
		return
	}

	tax, err := h.store.UpdateTax(r.Context(), database.UpdateTaxParams{
		Name:        req.Name,
		Rate:        rate,
		IsFixed:     req.IsFixed,
		IsInclusive: req.IsInclusive,
		Description: database.Text(req.Description),
		ID:          taxID,
		UserID:      userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "tax not found"})
			return
		}
		log.Printf("ERROR: update tax: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toTaxResponse(tax))
}

// Delete removes a tax rule. Rules attached to orders cannot be removed.
func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	taxID, ok := urlID(w, r, "tax")
	if !ok {
		return
	}

	_, err := h.store.DeleteTax(r.Context(), database.DeleteTaxParams{ID: taxID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "tax not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "tax is applied to orders"})
			return
		}
		log.Printf("ERROR: delete tax: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Calculate previews the tax and cash rounding for an item total. Unknown
// tax ids are ignored.
func (h *TaxHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	var req calculateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	total, err := decimal.NewFromString(req.TotalItemPrice)
	if err != nil || total.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_item_price must be a decimal >= 0"})
		return
	}

	taxIDs, ok := parseUniqueIDs(w, req.TaxIDs)
	if !ok {
		return
	}

	breakdown, err := h.quote.Calculate(r.Context(), userID, total, taxIDs)
	if err != nil {
		log.Printf("ERROR: calculate tax: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

func decodeTaxRequest(w http.ResponseWriter, r *http.Request) (taxRequest, bool) {
	var req taxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return req, false
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return req, false
	}
	return req, true
}

// parseUniqueIDs parses a list of tax ids, rejecting malformed and repeated
// values. On false an error response has already been written.
func parseUniqueIDs(w http.ResponseWriter, raw []string) ([]uuid.UUID, bool) {
	ids, ok := parseTaxIDs(w, raw)
	if !ok {
		return nil, false
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "taxIds should not contain duplicate values"})
			return nil, false
		}
		seen[id] = true
	}
	return ids, true
}

func parseTaxIDs(w http.ResponseWriter, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tax_ids"})
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
