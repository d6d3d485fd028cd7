// Package store keeps the job collection and its durable mirror in step.
// Collections are values: every mutation takes the current collection and
// returns the next one, persisting it before it is handed back.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/khrees2412/jobtrack/pkg/models"
)

// MirrorKey is the fixed key the collection is stored under
const MirrorKey = "jobTrackerData"

// ErrNotFound is returned by a Mirror when the key holds no value
var ErrNotFound = errors.New("key not found")

// Mirror is a durable key-value store holding whole values
type Mirror interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store performs validated mutations on collections and persists the result
type Store struct {
	mirror Mirror
	newID  func() models.ID
	now    func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the UUIDv7 generator
func WithIDGenerator(fn func() models.ID) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock sets the time source used for default dates
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New creates a Store writing to mirror
func New(mirror Mirror, opts ...Option) *Store {
	s := &Store{mirror: mirror, newID: uuidV7, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func uuidV7() models.ID {
	id, err := uuid.NewV7()
	if err != nil {
		return models.ID(uuid.NewString())
	}
	return models.ID(id.String())
}

// Now returns the store clock's current time
func (s *Store) Now() time.Time { return s.now() }

// Load reads the mirror. Missing or unreadable data yields an empty collection.
func (s *Store) Load(ctx context.Context) models.Collection {
	data, err := s.mirror.Get(ctx, MirrorKey)
	if errors.Is(err, ErrNotFound) {
		log.Printf("[DEBUG] no stored jobs under %q", MirrorKey)
		return models.Collection{}
	}
	if err != nil {
		log.Printf("[WARN] failed to read stored jobs: %v", err)
		return models.Collection{}
	}

	c, err := decode(data)
	if err != nil {
		log.Printf("[WARN] failed to load stored jobs, starting empty: %v", err)
		return models.Collection{}
	}
	log.Printf("[DEBUG] loaded %d jobs", len(c))
	return c
}

func decode(data []byte) (models.Collection, error) {
	var c models.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if c == nil {
		c = models.Collection{}
	}
	seen := make(map[models.ID]struct{}, len(c))
	for i, rec := range c {
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d: empty id", i)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		if strings.TrimSpace(rec.JobTitle) == "" || strings.TrimSpace(rec.Company) == "" {
			return nil, fmt.Errorf("record %d: %w", i, models.ErrMissingRequired)
		}
		if !rec.Status.Valid() {
			return nil, fmt.Errorf("record %d: %w %q", i, models.ErrInvalidStatus, rec.Status)
		}
	}
	return c, nil
}

// Save overwrites the mirror with the full collection. It does not validate.
func (s *Store) Save(ctx context.Context, c models.Collection) error {
	if c == nil {
		c = models.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode jobs: %w", err)
	}
	if err := s.mirror.Put(ctx, MirrorKey, data); err != nil {
		return fmt.Errorf("save jobs: %w", err)
	}
	log.Printf("[DEBUG] saved %d jobs", len(c))
	return nil
}

// Create validates the draft and appends a record with a fresh id
func (s *Store) Create(ctx context.Context, c models.Collection, d models.Draft) (models.Collection, models.JobRecord, error) {
	if err := d.Validate(); err != nil {
		return c, models.JobRecord{}, err
	}
	if d.DateApplied == "" {
		d.DateApplied = s.now().Format(models.DateLayout)
	}

	rec := d.Record(s.uniqueID(c))
	next := Insert(c, rec)
	if err := s.Save(ctx, next); err != nil {
		return c, models.JobRecord{}, err
	}
	log.Printf("[INFO] created job %s: %s at %s", rec.ID, rec.JobTitle, rec.Company)
	return next, rec, nil
}

// Update replaces the record with id in place. An unknown id is a no-op.
func (s *Store) Update(ctx context.Context, c models.Collection, id models.ID, d models.Draft) (models.Collection, error) {
	if err := d.Validate(); err != nil {
		return c, err
	}
	next, ok := Replace(c, d.Record(id))
	if !ok {
		log.Printf("[DEBUG] update of unknown job %s ignored", id)
		return c, nil
	}
	if err := s.Save(ctx, next); err != nil {
		return c, err
	}
	log.Printf("[INFO] updated job %s", id)
	return next, nil
}

// Delete removes the record with id. An unknown id is a no-op.
// Callers are expected to have confirmed the deletion.
func (s *Store) Delete(ctx context.Context, c models.Collection, id models.ID) (models.Collection, error) {
	next, ok := Remove(c, id)
	if !ok {
		log.Printf("[DEBUG] delete of unknown job %s ignored", id)
		return c, nil
	}
	if err := s.Save(ctx, next); err != nil {
		return c, err
	}
	log.Printf("[INFO] deleted job %s", id)
	return next, nil
}

// Import appends records from an external source, assigning each a fresh id.
// One invalid record rejects the whole batch.
func (s *Store) Import(ctx context.Context, c models.Collection, records []models.JobRecord) (models.Collection, error) {
	next := c.Clone()
	for i, rec := range records {
		d := models.DraftFromRecord(rec)
		if err := d.Validate(); err != nil {
			return c, fmt.Errorf("record %d: %w", i+1, err)
		}
		if d.DateApplied == "" {
			d.DateApplied = s.now().Format(models.DateLayout)
		}
		next = append(next, d.Record(s.uniqueID(next)))
	}
	if len(records) == 0 {
		return c, nil
	}
	if err := s.Save(ctx, next); err != nil {
		return c, err
	}
	log.Printf("[INFO] imported %d jobs", len(records))
	return next, nil
}

// uniqueID draws ids until one is absent from c
func (s *Store) uniqueID(c models.Collection) models.ID {
	for {
		id := s.newID()
		if id != "" && c.IndexOf(id) < 0 {
			return id
		}
	}
}

// Insert returns a new collection with rec appended
func Insert(c models.Collection, rec models.JobRecord) models.Collection {
	next := make(models.Collection, len(c), len(c)+1)
	copy(next, c)
	return append(next, rec)
}

// Replace returns a new collection with the record sharing rec's id swapped
// for rec at the same position. ok is false when no record matches.
func Replace(c models.Collection, rec models.JobRecord) (next models.Collection, ok bool) {
	i := c.IndexOf(rec.ID)
	if i < 0 {
		return c, false
	}
	next = c.Clone()
	next[i] = rec
	return next, true
}

// Remove returns a new collection without the record with id
func Remove(c models.Collection, id models.ID) (next models.Collection, ok bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	next = make(models.Collection, 0, len(c)-1)
	next = append(next, c[:i]...)
	return append(next, c[i+1:]...), true
}
