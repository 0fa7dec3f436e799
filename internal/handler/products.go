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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/enum"
	"github.com/tablepos/api/internal/service"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context, userID uuid.UUID) ([]database.Product, error)
	GetProduct(ctx context.Context, arg database.GetProductParams) (database.Product, error)
	GetCategory(ctx context.Context, arg database.GetCategoryParams) (database.Category, error)
	ListBundleItems(ctx context.Context, bundleID uuid.UUID) ([]database.ProductBundleItem, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	DeleteProduct(ctx context.Context, arg database.DeleteProductParams) (uuid.UUID, error)
	CreateBundleItem(ctx context.Context, arg database.CreateBundleItemParams) (database.ProductBundleItem, error)
	DeleteBundleItems(ctx context.Context, bundleID uuid.UUID) error
}

// NewProductStore creates a ProductStore from a DBTX (pool or tx).
type NewProductStore func(db database.DBTX) ProductStore

// ProductHandler handles product CRUD endpoints. A product and its bundle
// composition are written in one transaction.
type ProductHandler struct {
	store    ProductStore
	pool     service.TxBeginner
	newStore NewProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore, pool service.TxBeginner, newStore NewProductStore) *ProductHandler {
	return &ProductHandler{store: store, pool: pool, newStore: newStore}
}

// RegisterRoutes registers product CRUD endpoints on the given Chi router.
// Expected to be mounted at /products behind Authenticate.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type bundleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type productRequest struct {
	CategoryID  string              `json:"category_id"`
	Name        string              `json:"name"`
	Unit        string              `json:"unit"`
	Price       string              `json:"price"`
	TrackStock  bool                `json:"track_stock"`
	Stock       int32               `json:"stock"`
	Type        string              `json:"type"`
	BundleItems []bundleItemRequest `json:"bundle_items"`
	Description string              `json:"description"`
	ImageLink   string              `json:"image_link"`
}

type bundleItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type productResponse struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	CategoryID  uuid.UUID            `json:"category_id"`
	Name        string               `json:"name"`
	Unit        string               `json:"unit"`
	Price       string               `json:"price"`
	TrackStock  bool                 `json:"track_stock"`
	Stock       int32                `json:"stock"`
	Type        string               `json:"type"`
	BundleItems []bundleItemResponse `json:"bundle_items"`
	Description *string              `json:"description"`
	ImageLink   *string              `json:"image_link"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func toProductResponse(p database.Product, items []database.ProductBundleItem) productResponse {
	resp := productResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Unit:        string(p.Unit),
		Price:       numericToString(p.Price),
		TrackStock:  p.TrackStock,
		Stock:       p.Stock,
		Type:        string(p.Type),
		BundleItems: make([]bundleItemResponse, len(items)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i, it := range items {
		resp.BundleItems[i] = bundleItemResponse{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	if p.Description.Valid {
		resp.Description = &p.Description.String
	}
	if p.ImageLink.Valid {
		resp.ImageLink = &p.ImageLink.String
	}
	return resp
}

// productInput is a validated productRequest.
type productInput struct {
	categoryID  uuid.UUID
	name        string
	unit        database.UnitType
	price       pgtype.Numeric
	trackStock  bool
	stock       int32
	typ         database.ProductType
	bundleItems []database.ProductBundleItem
	description pgtype.Text
	imageLink   pgtype.Text
}

// --- Handlers ---

// List returns all products of the tenant. Bundle composition is only
// included on Get.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	products, err := h.store.ListProducts(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p, nil)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single product with its bundle items.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	productID, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	product, err := h.store.GetProduct(r.Context(), database.GetProductParams{ID: productID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: get product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListBundleItems(r.Context(), product.ID)
	if err != nil {
		log.Printf("ERROR: list bundle items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product, items))
}

// Create adds a product and, for bundles, its composition.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}

	in, ok := h.parseProductRequest(w, r, userID, uuid.Nil)
	if !ok {
		return
	}

	tx, err := h.pool.Begin(r.Context())
	if err != nil {
		log.Printf("ERROR: begin tx: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	defer tx.Rollback(r.Context())
	txStore := h.newStore(tx)

	product, err := txStore.CreateProduct(r.Context(), database.CreateProductParams{
		UserID:      userID,
		CategoryID:  in.categoryID,
		Name:        in.name,
		Unit:        in.unit,
		Price:       in.price,
		TrackStock:  in.trackStock,
		Stock:       in.stock,
		Type:        in.typ,
		Description: in.description,
		ImageLink:   in.imageLink,
	})
	if err != nil {
		log.Printf("ERROR: create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := writeBundleItems(r.Context(), txStore, product.ID, in.bundleItems)
	if err != nil {
		log.Printf("ERROR: create bundle items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		log.Printf("ERROR: commit product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product, items))
}

// Update replaces a product and its bundle composition.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	productID, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	in, ok := h.parseProductRequest(w, r, userID, productID)
	if !ok {
		return
	}

	tx, err := h.pool.Begin(r.Context())
	if err != nil {
		log.Printf("ERROR: begin tx: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	defer tx.Rollback(r.Context())
	txStore := h.newStore(tx)

	product, err := txStore.UpdateProduct(r.Context(), database.UpdateProductParams{
		CategoryID:  in.categoryID,
		Name:        in.name,
		Unit:        in.unit,
		Price:       in.price,
		TrackStock:  in.trackStock,
		Stock:       in.stock,
		Type:        in.typ,
		Description: in.description,
		ImageLink:   in.imageLink,
		ID:          productID,
		UserID:      userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("ERROR: update product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := txStore.DeleteBundleItems(r.Context(), product.ID); err != nil {
		log.Printf("ERROR: delete bundle items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := writeBundleItems(r.Context(), txStore, product.ID, in.bundleItems)
	if err != nil {
		log.Printf("ERROR: create bundle items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		log.Printf("ERROR: commit product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product, items))
}

// Delete removes a product that no order item or bundle references.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	productID, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	_, err := h.store.DeleteProduct(r.Context(), database.DeleteProductParams{ID: productID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "product is referenced by orders or bundles"})
			return
		}
		log.Printf("ERROR: delete product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

// parseProductRequest decodes and validates a product body, including the
// bundle composition rules. selfID is the product being edited, or uuid.Nil
// on create. On false an error response has already been written.
func (h *ProductHandler) parseProductRequest(w http.ResponseWriter, r *http.Request, userID, selfID uuid.UUID) (productInput, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return productInput{}, false
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return productInput{}, false
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
		return productInput{}, false
	}

	if !isValidUnit(req.Unit) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit"})
		return productInput{}, false
	}

	if req.Type == "" {
		req.Type = enum.ProductTypeStandalone
	}
	if !isValidProductType(req.Type) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid type"})
		return productInput{}, false
	}

	price, err := parseMoney(req.Price)
	if err != nil {
		if errors.Is(err, errNegativeMoney) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be >= 0"})
		} else {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		}
		return productInput{}, false
	}

	if req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "stock must be >= 0"})
		return productInput{}, false
	}

	_, err = h.store.GetCategory(r.Context(), database.GetCategoryParams{ID: categoryID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return productInput{}, false
		}
		log.Printf("ERROR: get category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return productInput{}, false
	}

	seen := make(map[uuid.UUID]bool, len(req.BundleItems))
	items := make([]database.ProductBundleItem, 0, len(req.BundleItems))
	for i, it := range req.BundleItems {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil || pid == selfID || seen[pid] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": bundleItemError(i, "")})
			return productInput{}, false
		}
		if it.Quantity < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": bundleItemError(i, "Quantity should be at least 1.")})
			return productInput{}, false
		}

		_, err = h.store.GetProduct(r.Context(), database.GetProductParams{ID: pid, UserID: userID})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": bundleItemError(i, "Product not found.")})
				return productInput{}, false
			}
			log.Printf("ERROR: get bundle product: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return productInput{}, false
		}

		seen[pid] = true
		items = append(items, database.ProductBundleItem{ProductID: pid, Quantity: it.Quantity})
	}

	if req.Type == enum.ProductTypeBundle && len(items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bundle_items cannot be empty in BUNDLE"})
		return productInput{}, false
	}
	if req.Type != enum.ProductTypeBundle && len(items) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bundle_items must be empty in STANDALONE and BUNDLE_ITEM"})
		return productInput{}, false
	}

	return productInput{
		categoryID:  categoryID,
		name:        req.Name,
		unit:        database.UnitType(req.Unit),
		price:       price,
		trackStock:  req.TrackStock,
		stock:       req.Stock,
		typ:         database.ProductType(req.Type),
		bundleItems: items,
		description: database.Text(req.Description),
		imageLink:   database.Text(req.ImageLink),
	}, true
}

func writeBundleItems(ctx context.Context, store ProductStore, bundleID uuid.UUID, items []database.ProductBundleItem) ([]database.ProductBundleItem, error) {
	created := make([]database.ProductBundleItem, 0, len(items))
	for _, it := range items {
		row, err := store.CreateBundleItem(ctx, database.CreateBundleItemParams{
			BundleID:  bundleID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, row)
	}
	return created, nil
}

func bundleItemError(idx int, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Invalid bundle item at index %d.", idx)
	}
	return fmt.Sprintf("%s Invalid bundle item at index %d.", reason, idx)
}

func isValidUnit(u string) bool {
	switch u {
	case enum.UnitPcs, enum.UnitKg, enum.UnitLiter, enum.UnitBox, enum.UnitPortion:
		return true
	}
	return false
}

func isValidProductType(t string) bool {
	switch t {
	case enum.ProductTypeStandalone, enum.ProductTypeBundle, enum.ProductTypeBundleItem:
		return true
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

var errNegativeMoney = errors.New("negative amount")

// parseMoney parses a non-negative decimal string into a NUMERIC value.
func parseMoney(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativeMoney
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

// numericToString formats a NUMERIC with 2 decimal places.
func numericToString(n pgtype.Numeric) string {
	return database.Decimal(n).StringFixed(2)
}
