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
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/enum"
)

// TableStore defines the database methods needed by table handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type TableStore interface {
	ListTables(ctx context.Context, userID uuid.UUID) ([]database.Table, error)
	GetTable(ctx context.Context, arg database.GetTableParams) (database.Table, error)
	CreateTable(ctx context.Context, arg database.CreateTableParams) (database.Table, error)
	UpdateTable(ctx context.Context, arg database.UpdateTableParams) (database.Table, error)
	DeleteTable(ctx context.Context, arg database.DeleteTableParams) (uuid.UUID, error)
}

// TableHandler handles dining table CRUD endpoints.
type TableHandler struct {
	store TableStore
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(store TableStore) *TableHandler {
	return &TableHandler{store: store}
}

// RegisterRoutes registers table endpoints. Expected to be mounted at
// /tables behind Authenticate.
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type tableRequest struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type tableResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTableResponse(t database.Table) tableResponse {
	resp := tableResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Description.Valid {
		resp.Description = &t.Description.String
	}
	return resp
}

// List returns the tenant's tables with their current status.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	tables, err := h.store.ListTables(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: list tables: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	tableID, ok := urlID(w, r, "table")
	if !ok {
		return
	}

	table, err := h.store.GetTable(r.Context(), database.GetTableParams{ID: tableID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: get table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(table))
}

func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	req, ok := decodeTableRequest(w, r)
	if !ok {
		return
	}

	table, err := h.store.CreateTable(r.Context(), database.CreateTableParams{
		UserID:      userID,
		Name:        req.Name,
		Status:      database.TableStatus(req.Status),
		Description: database.Text(req.Description),
	})
	if err != nil {
		log.Printf("ERROR: create table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toTableResponse(table))
}

// Update replaces a table's name, status and description. Setting the
// status directly lets staff reserve or take a table out of service.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	tableID, ok := urlID(w, r, "table")
	if !ok {
		return
	}

	req, ok := decodeTableRequest(w, r)
	if !ok {
		return
	}

	table, err := h.store.UpdateTable(r.Context(), database.UpdateTableParams{
		Name:        req.Name,
		Status:      database.TableStatus(req.Status),
		Description: database.Text(req.Description),
		ID:          tableID,
		UserID:      userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		log.Printf("ERROR: update table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Delete removes a table no order references.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	tableID, ok := urlID(w, r, "table")
	if !ok {
		return
	}

	_, err := h.store.DeleteTable(r.Context(), database.DeleteTableParams{ID: tableID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "table still has orders"})
			return
		}
		log.Printf("ERROR: delete table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeTableRequest(w http.ResponseWriter, r *http.Request) (tableRequest, bool) {
	var req tableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return req, false
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return req, false
	}
	if req.Status == "" {
		req.Status = enum.TableStatusAvailable
	}
	switch req.Status {
	case enum.TableStatusAvailable, enum.TableStatusOccupied, enum.TableStatusReserved, enum.TableStatusOutOfService:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return req, false
	}
	return req, true
}
