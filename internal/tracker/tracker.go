// Package tracker owns the in-memory job collection and the create/edit form.
//
// The form is a small state machine: Closed, Creating, or Editing a specific
// record. Field edits only touch the draft; Submit commits it through the
// store, which persists before the new collection is adopted.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/khrees2412/jobtrack/internal/store"
	"github.com/khrees2412/jobtrack/pkg/models"
)

// DeletePrompt is the question put to the Confirmer before each delete
const DeletePrompt = "Are you sure you want to delete this job?"

var (
	ErrNotFound     = errors.New("job not found")
	ErrAmbiguous    = errors.New("job reference matches more than one job")
	ErrFormOpen     = errors.New("form is already open")
	ErrFormClosed   = errors.New("form is not open")
	ErrUnknownField = errors.New("unknown field")
)

// State of the create/edit form
type State int

const (
	Closed State = iota
	Creating
	Editing
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

// Store is the persistence-backed set of mutations the tracker relies on
type Store interface {
	Load(ctx context.Context) models.Collection
	Create(ctx context.Context, c models.Collection, d models.Draft) (models.Collection, models.JobRecord, error)
	Update(ctx context.Context, c models.Collection, id models.ID, d models.Draft) (models.Collection, error)
	Delete(ctx context.Context, c models.Collection, id models.ID) (models.Collection, error)
	Import(ctx context.Context, c models.Collection, records []models.JobRecord) (models.Collection, error)
	Now() time.Time
}

// Confirmer asks the user a yes/no question. It returns ctx.Err() when ctx
// is cancelled before an answer arrives.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// Tracker holds the committed collection and the form state
type Tracker struct {
	mu     sync.Mutex
	store  Store
	jobs   models.Collection
	state  State
	editID models.ID
	draft  models.Draft
}

// Open loads the collection once and returns a tracker with the form closed
func Open(ctx context.Context, s Store) *Tracker {
	t := &Tracker{store: s, jobs: s.Load(ctx)}
	t.draft = models.NewDraft(s.Now())
	return t
}

// Snapshot returns a copy of the committed collection
func (t *Tracker) Snapshot() models.Collection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jobs.Clone()
}

// Stats computes the counters for the current collection
func (t *Tracker) Stats() store.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return store.ComputeStats(t.jobs)
}

// State returns the form state and, when editing, the target id
func (t *Tracker) State() (State, models.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.editID
}

// Draft returns the current form values
func (t *Tracker) Draft() models.Draft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// OpenCreate opens the form with default values
func (t *Tracker) OpenCreate() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Closed {
		return ErrFormOpen
	}
	t.state = Creating
	t.editID = ""
	t.draft = models.NewDraft(t.store.Now())
	return nil
}

// OpenEdit opens the form pre-filled with the record's values
func (t *Tracker) OpenEdit(id models.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Closed {
		return ErrFormOpen
	}
	rec, ok := t.jobs.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t.state = Editing
	t.editID = id
	t.draft = models.DraftFromRecord(rec)
	return nil
}

// SetField sets one draft field by its record field name
func (t *Tracker) SetField(name, value string) error {
	return t.UpdateDraft(func(d *models.Draft) error {
		switch name {
		case "jobTitle":
			d.JobTitle = value
		case "company":
			d.Company = value
		case "status":
			st, err := models.ParseStatus(value)
			if err != nil {
				return err
			}
			d.Status = st
		case "jobUrl":
			d.JobURL = strings.TrimSpace(value)
		case "dateApplied":
			d.DateApplied = strings.TrimSpace(value)
		default:
			return fmt.Errorf("%w %q", ErrUnknownField, name)
		}
		return nil
	})
}

// UpdateDraft applies fn to the draft. A failing fn leaves the draft as it was.
func (t *Tracker) UpdateDraft(fn func(d *models.Draft) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Closed {
		return ErrFormClosed
	}
	d := t.draft
	if err := fn(&d); err != nil {
		return err
	}
	t.draft = d
	return nil
}

// Submit commits the draft. On validation or storage failure the form stays open.
func (t *Tracker) Submit(ctx context.Context) (models.JobRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var (
		next models.Collection
		rec  models.JobRecord
		err  error
	)
	switch t.state {
	case Creating:
		next, rec, err = t.store.Create(ctx, t.jobs, t.draft)
	case Editing:
		next, err = t.store.Update(ctx, t.jobs, t.editID, t.draft)
		rec, _ = next.Find(t.editID)
	default:
		return models.JobRecord{}, ErrFormClosed
	}
	if err != nil {
		return models.JobRecord{}, err
	}

	t.jobs = next
	t.reset()
	return rec, nil
}

// Cancel discards the draft and closes the form
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

func (t *Tracker) reset() {
	t.state = Closed
	t.editID = ""
	t.draft = models.NewDraft(t.store.Now())
}

// Delete removes the record after an affirmative answer from c.
// It reports whether the record was deleted.
func (t *Tracker) Delete(ctx context.Context, id models.ID, c Confirmer) (bool, error) {
	ok, err := c.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		log.Printf("[DEBUG] delete of %s not confirmed", id)
		return false, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.jobs.IndexOf(id) < 0 {
		return false, nil
	}
	next, err := t.store.Delete(ctx, t.jobs, id)
	if err != nil {
		return false, err
	}
	t.jobs = next
	return true, nil
}

// Import appends externally supplied records
func (t *Tracker) Import(ctx context.Context, records []models.JobRecord) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next, err := t.store.Import(ctx, t.jobs, records)
	if err != nil {
		return 0, err
	}
	added := len(next) - len(t.jobs)
	t.jobs = next
	return added, nil
}

// Resolve turns a user reference into a record id. It tries an exact id,
// then a 1-based list position, then a unique id prefix.
func (t *Tracker) Resolve(ref string) (models.ID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if t.jobs.IndexOf(models.ID(ref)) >= 0 {
		return models.ID(ref), nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(t.jobs) {
		return t.jobs[n-1].ID, nil
	}

	var match models.ID
	for _, rec := range t.jobs {
		if !strings.HasPrefix(string(rec.ID), ref) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
		}
		match = rec.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}
