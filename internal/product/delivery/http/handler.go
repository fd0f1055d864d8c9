package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/product/usecase/command"
	"github.com/tair/storefront/internal/product/usecase/query"
	"github.com/tair/storefront/pkg/logger"
)

// ProductHandler handles HTTP requests for the catalog using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler      *command.CreateProductHandler
	updateHandler      *command.UpdateProductHandler
	deleteHandler      *command.DeleteProductHandler
	updateStockHandler *command.UpdateStockHandler
	promotionHandler   *command.AttachPromotionHandler
	orderHandler       *command.PlaceOrderHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	statsHandler      *query.GetStatsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	orderLines     *prometheus.CounterVec
	revenue        prometheus.Counter
	totalProducts  prometheus.Gauge
	totalStock     prometheus.Gauge
}

// NewProductHandler creates a new product handler. Metrics are registered on reg.
// This is used by Wire for automatic dependency injection
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	updateStockHandler *command.UpdateStockHandler,
	promotionHandler *command.AttachPromotionHandler,
	orderHandler *command.PlaceOrderHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	statsHandler *query.GetStatsHandler,
	reg prometheus.Registerer,
) *ProductHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_requests_total",
			Help: "Total number of requests to the storefront",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_request_duration_seconds",
			Help:    "Duration of storefront requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "storefront_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,  // p50 (median) with 5% error
				0.9:  0.01,  // p90 with 1% error
				0.95: 0.01,  // p95 with 1% error
				0.99: 0.001, // p99 with 0.1% error
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	orderLines := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_lines_total",
			Help: "Order lines processed, by outcome",
		},
		[]string{"outcome"},
	)

	revenue := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_revenue_total",
			Help: "Total amount charged for bought order lines",
		},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	totalStock := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_total_stock",
			Help: "Units in stock across the catalog, inactive products included",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, requestSummary, orderLines, revenue, totalProducts, totalStock)

	h := &ProductHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		updateStockHandler: updateStockHandler,
		promotionHandler:   promotionHandler,
		orderHandler:       orderHandler,
		getProductHandler:  getProductHandler,
		listHandler:        listHandler,
		statsHandler:       statsHandler,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		requestSummary:     requestSummary,
		orderLines:         orderLines,
		revenue:            revenue,
		totalProducts:      totalProducts,
		totalStock:         totalStock,
	}
	h.updateCatalogMetrics()

	return h
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		// Record metrics
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.UpdateProduct)).Methods("PATCH")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", h.UpdateStock)).Methods("PUT")
	router.HandleFunc("/api/products/{id}/promotion", h.metricsMiddleware("/api/products/{id}/promotion", h.AttachPromotion)).Methods("PUT")
	router.HandleFunc("/api/products/{id}/promotion", h.metricsMiddleware("/api/products/{id}/promotion", h.RemovePromotion)).Methods("DELETE")

	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", h.PlaceOrder)).Methods("POST")
}

// PromotionView is the JSON shape of a promotion
type PromotionView struct {
	Kind    domain.PromotionKind `json:"kind"`
	Name    string               `json:"name"`
	Percent *decimal.Decimal     `json:"percent,omitempty"`
}

// ProductView is the JSON shape of a product
type ProductView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        domain.Kind     `json:"kind"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Maximum     int             `json:"maximum,omitempty"`
	IsActive    bool            `json:"is_active"`
	Promotion   *PromotionView  `json:"promotion,omitempty"`
	Description string          `json:"description"`
}

func newProductView(p *domain.Product) ProductView {
	view := ProductView{
		ID:          p.ID(),
		Name:        p.Name(),
		Kind:        p.Kind(),
		Price:       p.Price(),
		Quantity:    p.Quantity(),
		Maximum:     p.Maximum(),
		IsActive:    p.IsActive(),
		Description: p.String(),
	}

	if promo := p.Promotion(); promo != nil {
		view.Promotion = &PromotionView{Kind: promo.Kind(), Name: promo.Name()}
		if pct, ok := promo.(*domain.PercentOff); ok {
			percent := pct.Percent()
			view.Promotion.Percent = &percent
		}
	}

	return view
}

func newProductViews(products []*domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

type promotionRequest struct {
	Kind    domain.PromotionKind `json:"kind"`
	Name    string               `json:"name"`
	Percent decimal.Decimal      `json:"percent"`
}

func (req *promotionRequest) spec() *command.PromotionSpec {
	if req == nil {
		return nil
	}
	return &command.PromotionSpec{Kind: req.Kind, Name: req.Name, Percent: req.Percent}
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string            `json:"name"`
		Kind      domain.Kind       `json:"kind"`
		Price     decimal.Decimal   `json:"price"`
		Quantity  int               `json:"quantity"`
		Maximum   int               `json:"maximum"`
		Promotion *promotionRequest `json:"promotion"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Name:      req.Name,
		Kind:      req.Kind,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Maximum:   req.Maximum,
		Promotion: req.Promotion.spec(),
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, statusFor(err), err.Error())
		return
	}

	h.updateCatalogMetrics()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    newProductView(product),
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	q := query.ListProductsQuery{
		ActiveOnly:  activeOnly,
		SortByPrice: r.URL.Query().Get("sort") == "price",
	}

	products := h.listHandler.Handle(q)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": newProductViews(products),
			"total":    len(products),
		},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, statusFor(err), "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    newProductView(product),
	})
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price    *decimal.Decimal `json:"price"`
		IsActive *bool            `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ProductID: mux.Vars(r)["id"],
		Price:     req.Price,
		IsActive:  req.IsActive,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to update product")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    newProductView(product),
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteProductCommand{ID: mux.Vars(r)["id"]}
	if err := h.deleteHandler.Handle(cmd); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to delete product")
		respondError(w, statusFor(err), err.Error())
		return
	}

	h.updateCatalogMetrics()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// UpdateStock handles PUT /api/products/{id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.updateStockHandler.Handle(command.UpdateStockCommand{
		ProductID: mux.Vars(r)["id"],
		Quantity:  *req.Quantity,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to update stock")
		respondError(w, statusFor(err), err.Error())
		return
	}

	h.updateCatalogMetrics()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    newProductView(product),
	})
}

// AttachPromotion handles PUT /api/products/{id}/promotion
func (h *ProductHandler) AttachPromotion(w http.ResponseWriter, r *http.Request) {
	var req promotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.setPromotion(w, r, req.spec(), "Promotion attached successfully")
}

// RemovePromotion handles DELETE /api/products/{id}/promotion
func (h *ProductHandler) RemovePromotion(w http.ResponseWriter, r *http.Request) {
	h.setPromotion(w, r, nil, "Promotion removed successfully")
}

func (h *ProductHandler) setPromotion(w http.ResponseWriter, r *http.Request, spec *command.PromotionSpec, message string) {
	product, err := h.promotionHandler.Handle(command.AttachPromotionCommand{
		ProductID: mux.Vars(r)["id"],
		Promotion: spec,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to set promotion")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    newProductView(product),
	})
}

// OrderLineView reports the outcome of one order line
type OrderLineView struct {
	ProductID string          `json:"product_id,omitempty"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Error     string          `json:"error,omitempty"`
}

// OrderView is the JSON shape of a receipt
type OrderView struct {
	OrderID  string          `json:"order_id"`
	Total    decimal.Decimal `json:"total"`
	Lines    []OrderLineView `json:"lines"`
	Failures []string        `json:"failures"`
}

func newOrderView(receipt *catalog.Receipt) OrderView {
	view := OrderView{
		OrderID:  receipt.ID,
		Total:    receipt.Total,
		Lines:    make([]OrderLineView, 0, len(receipt.Lines)),
		Failures: make([]string, 0),
	}

	for _, line := range receipt.Lines {
		lv := OrderLineView{
			Product:  line.ProductName(),
			Quantity: line.Quantity,
			Amount:   line.Amount,
		}
		if line.Product != nil {
			lv.ProductID = line.Product.ID()
		}
		if line.Err != nil {
			lv.Error = line.Err.Error()
			view.Failures = append(view.Failures, line.Reason())
		}
		view.Lines = append(view.Lines, lv)
	}

	return view
}

// PlaceOrder handles POST /api/orders. Lines that cannot be bought are reported
// in the response body; the request itself still succeeds.
func (h *ProductHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lines []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"lines"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.PlaceOrderCommand{Lines: make([]command.OrderLine, 0, len(req.Lines))}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	receipt := h.orderHandler.Handle(r.Context(), cmd)

	failed := len(receipt.Failures())
	h.orderLines.WithLabelValues("bought").Add(float64(len(receipt.Lines) - failed))
	h.orderLines.WithLabelValues("failed").Add(float64(failed))
	h.revenue.Add(receipt.Total.InexactFloat64())
	h.updateCatalogMetrics()

	message := "Order placed successfully"
	if failed > 0 {
		message = strconv.Itoa(failed) + " of " + strconv.Itoa(len(receipt.Lines)) + " order lines could not be bought"
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    newOrderView(receipt),
	})
}

// GetStats handles GET /api/products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.statsHandler.Handle(query.GetStatsQuery{}),
	})
}

func (h *ProductHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := h.statsHandler.Handle(query.GetStatsQuery{})
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront is healthy",
			Data: map[string]int{
				"products":        stats.TotalProducts,
				"active_products": stats.ActiveProducts,
			},
		})
	}).Methods("GET")
}

// updateCatalogMetrics refreshes the catalog gauges
func (h *ProductHandler) updateCatalogMetrics() {
	stats := h.statsHandler.Handle(query.GetStatsQuery{})
	h.totalProducts.Set(float64(stats.TotalProducts))
	h.totalStock.Set(float64(stats.TotalQuantity))
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case domain.IsPurchaseError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}
