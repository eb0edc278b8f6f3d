// Package receipts keeps the per-tenant history of generated receipts on the
// local store.
package receipts

import (
	"encoding/json"
	"time"

	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/tenants"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "portal.receipts.v1:"

	// MaxEntries is how many receipts are kept per tenant.
	MaxEntries = 20

	// NoRecords is reported as the last period when the history is empty.
	NoRecords = "Sin registros"
)

// KV is the local store the history lives in.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Entry is a receipt saved in the history.
type Entry struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"guardadoEn"`
	apimodel.SimpleReceipt
}

// Stats summarizes a tenant's history for the dashboard.
type Stats struct {
	Total      int
	LastPeriod string
}

type History struct {
	kv      KV
	nowFunc func() time.Time
	log     zerolog.Logger
}

type Option func(*History)

func WithNowFunc(now func() time.Time) Option {
	return func(h *History) {
		h.nowFunc = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(h *History) {
		h.log = logger
	}
}

func New(kv KV, options ...Option) *History {
	h := &History{
		kv:      kv,
		nowFunc: time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Key returns the storage key of a tenant's history.
func Key(tenantID string) string {
	return keyPrefix + tenants.Normalize(tenantID, tenants.DefaultID)
}

// Add puts receipt at the front of the tenant's history, dropping the oldest
// entries beyond MaxEntries.
func (h *History) Add(tenantID string, receipt apimodel.SimpleReceipt) Entry {
	entry := Entry{
		ID:            uuid.NewString(),
		SavedAt:       h.nowFunc().UTC(),
		SimpleReceipt: receipt,
	}

	entries := append([]Entry{entry}, h.List(tenantID)...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		h.log.Warn().Err(err).Msg("receipt history not saved")
		return entry
	}
	h.kv.Set(Key(tenantID), string(data))
	return entry
}

// List returns the tenant's receipts, newest first. A missing or corrupt
// history reads as empty.
func (h *History) List(tenantID string) []Entry {
	raw, ok := h.kv.Get(Key(tenantID))
	if !ok {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		h.log.Warn().Err(err).Str("tenant", tenantID).Msg("discarding unreadable receipt history")
		return []Entry{}
	}
	return entries
}

func (h *History) Stats(tenantID string) Stats {
	entries := h.List(tenantID)
	stats := Stats{Total: len(entries), LastPeriod: NoRecords}
	if len(entries) > 0 && entries[0].Period != "" {
		stats.LastPeriod = entries[0].Period
	}
	return stats
}
