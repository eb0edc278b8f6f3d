// Package inbox stores raw data drafts (PDF extracts, spreadsheets, letters)
// per tenant until they are processed.
package inbox

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cunservicios/portal/tenants"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const keyPrefix = "portal.data_inbox.v1:"

// MaxDrafts is how many drafts are kept per tenant.
const MaxDrafts = 30

// Draft sources offered by the inbox form.
const (
	SourcePDF    = "pdf"
	SourceExcel  = "excel"
	SourceMail   = "correo"
	SourceManual = "manual"
)

type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type Draft struct {
	Source      string `json:"origen"`
	FileName    string `json:"nombreArchivo"`
	Description string `json:"descripcion"`
	RawContent  string `json:"contenidoCrudo"`
}

// Record is a saved draft.
type Record struct {
	Draft
	ID   string    `json:"id"`
	Date time.Time `json:"fecha"`
}

type Inbox struct {
	kv      KV
	nowFunc func() time.Time
	log     zerolog.Logger
}

type Option func(*Inbox)

func WithNowFunc(now func() time.Time) Option {
	return func(i *Inbox) {
		i.nowFunc = now
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(i *Inbox) {
		i.log = logger
	}
}

func New(kv KV, options ...Option) *Inbox {
	i := &Inbox{
		kv:      kv,
		nowFunc: time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

func Key(tenantID string) string {
	return keyPrefix + tenants.Normalize(tenantID, tenants.DefaultID)
}

// Save stores d at the front of the tenant's inbox. An empty source
// defaults to SourcePDF.
func (i *Inbox) Save(tenantID string, d Draft) Record {
	d.Source = strings.TrimSpace(d.Source)
	if d.Source == "" {
		d.Source = SourcePDF
	}
	record := Record{
		Draft: d,
		ID:    uuid.NewString(),
		Date:  i.nowFunc().UTC(),
	}

	records := append([]Record{record}, i.List(tenantID)...)
	if len(records) > MaxDrafts {
		records = records[:MaxDrafts]
	}

	data, err := json.Marshal(records)
	if err != nil {
		i.log.Warn().Err(err).Msg("inbox draft not saved")
		return record
	}
	i.kv.Set(Key(tenantID), string(data))
	return record
}

// List returns the tenant's drafts, newest first.
func (i *Inbox) List(tenantID string) []Record {
	raw, ok := i.kv.Get(Key(tenantID))
	if !ok {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		i.log.Warn().Err(err).Str("tenant", tenantID).Msg("discarding unreadable inbox")
		return []Record{}
	}
	return records
}
