// Package ledger tallies purchase events into per-product sales totals.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// ErrInvalidEvent is returned for events that cannot be tallied
var ErrInvalidEvent = errors.New("invalid purchase event")

// Entry is the running total of one product
type Entry struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
	Orders      int             `json:"orders"`
}

// Summary is a snapshot of the whole ledger
type Summary struct {
	Entries []Entry         `json:"entries"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Ledger aggregates purchase events. Redelivered events are counted once.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	seen    map[string]struct{}

	unitsSold *prometheus.CounterVec
	revenue   *prometheus.CounterVec
}

// New creates an empty ledger and registers its metrics on reg
func New(reg prometheus.Registerer) *Ledger {
	unitsSold := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_ledger_units_sold_total",
			Help: "Units sold, by product",
		},
		[]string{"product"},
	)

	revenue := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_ledger_revenue_total",
			Help: "Revenue, by product",
		},
		[]string{"product"},
	)

	reg.MustRegister(unitsSold, revenue)

	return &Ledger{
		entries:   make(map[string]*Entry),
		seen:      make(map[string]struct{}),
		unitsSold: unitsSold,
		revenue:   revenue,
	}
}

// Record adds one purchase to the tally. It matches kafka.EventHandler.
func (l *Ledger) Record(ctx context.Context, event kafka.ProductPurchasedEvent) error {
	if event.ProductID == "" || event.Quantity <= 0 {
		return ErrInvalidEvent
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.EventID != "" {
		if _, dup := l.seen[event.EventID]; dup {
			logger.Debug(ctx).
				Str("event_id", event.EventID).
				Msg("Duplicate purchase event ignored")
			return nil
		}
		l.seen[event.EventID] = struct{}{}
	}

	entry, ok := l.entries[event.ProductID]
	if !ok {
		entry = &Entry{ProductID: event.ProductID, Revenue: decimal.Zero}
		l.entries[event.ProductID] = entry
	}
	entry.ProductName = event.ProductName
	entry.Units += event.Quantity
	entry.Revenue = entry.Revenue.Add(event.Amount)
	entry.Orders++

	l.unitsSold.WithLabelValues(event.ProductName).Add(float64(event.Quantity))
	l.revenue.WithLabelValues(event.ProductName).Add(event.Amount.InexactFloat64())

	logger.Info(ctx).
		Str("order_id", event.OrderID).
		Str("product", event.ProductName).
		Int("quantity", event.Quantity).
		Str("amount", event.Amount.StringFixed(2)).
		Msg("Sale recorded")

	return nil
}

// Summary returns the entries ordered by revenue, highest first
func (l *Ledger) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Summary{Entries: make([]Entry, 0, len(l.entries)), Revenue: decimal.Zero}
	for _, e := range l.entries {
		s.Entries = append(s.Entries, *e)
		s.Units += e.Units
		s.Revenue = s.Revenue.Add(e.Revenue)
	}

	sort.Slice(s.Entries, func(i, j int) bool {
		if c := s.Entries[i].Revenue.Cmp(s.Entries[j].Revenue); c != 0 {
			return c > 0
		}
		return s.Entries[i].ProductID < s.Entries[j].ProductID
	})

	return s
}

// RegisterRoutes exposes GET /api/ledger
func (l *Ledger) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ledger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    l.Summary(),
		})
	}).Methods("GET")
}
