package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the text format of JobRecord.DateApplied
const DateLayout = "2006-01-02"

var (
	ErrMissingRequired = errors.New("job title and company are required")
	ErrInvalidStatus   = errors.New("invalid status")
)

// Status is the stage of a tracked application
type Status string

const (
	StatusWishlist  Status = "Wishlist"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every status in pipeline order
var Statuses = []Status{StatusWishlist, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// ParseStatus converts user input to a Status, ignoring case and surrounding whitespace
func ParseStatus(s string) (Status, error) {
	st := Status(cases.Title(language.English).String(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w %q: must be one of %v", ErrInvalidStatus, s, Statuses)
	}
	return st, nil
}

// Valid reports whether s is one of the enumerated statuses
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// UnmarshalText rejects anything outside the enumeration, stored data included
func (s *Status) UnmarshalText(b []byte) error {
	st := Status(b)
	if !st.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidStatus, string(b))
	}
	*s = st
	return nil
}

// ID identifies a JobRecord. It decodes from JSON strings and numbers
// so millisecond ids written by the browser tracker still load.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// JobRecord represents one tracked job application
type JobRecord struct {
	ID          ID     `json:"id" yaml:"id"`
	JobTitle    string `json:"jobTitle" yaml:"jobTitle"`
	Company     string `json:"company" yaml:"company"`
	Status      Status `json:"status" yaml:"status"`
	JobURL      string `json:"jobUrl" yaml:"jobUrl"`
	DateApplied string `json:"dateApplied" yaml:"dateApplied"`
}

// Draft holds in-progress form values for creating or editing a record
type Draft struct {
	JobTitle    string
	Company     string
	Status      Status
	JobURL      string
	DateApplied string
}

// NewDraft returns the defaults for a new record
func NewDraft(now time.Time) Draft {
	return Draft{
		Status:      StatusWishlist,
		DateApplied: now.Format(DateLayout),
	}
}

// DraftFromRecord copies a record's editable fields
func DraftFromRecord(rec JobRecord) Draft {
	return Draft{
		JobTitle:    rec.JobTitle,
		Company:     rec.Company,
		Status:      rec.Status,
		JobURL:      rec.JobURL,
		DateApplied: rec.DateApplied,
	}
}

// Validate checks the draft can be committed. An empty status means Wishlist.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.JobTitle) == "" || strings.TrimSpace(d.Company) == "" {
		return ErrMissingRequired
	}
	if d.Status == "" {
		d.Status = StatusWishlist
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidStatus, d.Status)
	}
	return nil
}

// Record builds a JobRecord with the given id from the draft
func (d Draft) Record(id ID) JobRecord {
	return JobRecord{
		ID:          id,
		JobTitle:    d.JobTitle,
		Company:     d.Company,
		Status:      d.Status,
		JobURL:      d.JobURL,
		DateApplied: d.DateApplied,
	}
}

// Collection is the ordered list of records, insertion order preserved
type Collection []JobRecord

// IndexOf returns the position of id, or -1
func (c Collection) IndexOf(id ID) int {
	for i, rec := range c {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) Find(id ID) (JobRecord, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return JobRecord{}, false
}

// Clone returns a copy that shares no backing array with c
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
