package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "Wishlist", want: StatusWishlist},
		{in: "applied", want: StatusApplied},
		{in: "INTERVIEW", want: StatusInterview},
		{in: "  offer ", want: StatusOffer},
		{in: "rejected", want: StatusRejected},
		{in: "pending", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJobRecord_JSON(t *testing.T) {
	t.Run("field names", func(t *testing.T) {
		rec := JobRecord{ID: "abc", JobTitle: "Dev", Company: "Acme", Status: StatusApplied, DateApplied: "2024-01-15"}
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"abc","jobTitle":"Dev","company":"Acme","status":"Applied","jobUrl":"","dateApplied":"2024-01-15"}`, string(data))
	})

	t.Run("numeric id", func(t *testing.T) {
		var rec JobRecord
		require.NoError(t, json.Unmarshal([]byte(`{"id":1705312345678,"jobTitle":"Dev","company":"Acme","status":"Offer"}`), &rec))
		assert.Equal(t, ID("1705312345678"), rec.ID)
	})

	t.Run("bad id type", func(t *testing.T) {
		var rec JobRecord
		assert.Error(t, json.Unmarshal([]byte(`{"id":true,"status":"Offer"}`), &rec))
	})

	t.Run("unknown status", func(t *testing.T) {
		var rec JobRecord
		err := json.Unmarshal([]byte(`{"id":"1","status":"Ghosted"}`), &rec)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestDraft(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	d := NewDraft(now)
	assert.Equal(t, Draft{Status: StatusWishlist, DateApplied: "2024-01-15"}, d)
	assert.ErrorIs(t, d.Validate(), ErrMissingRequired)

	d.JobTitle, d.Company, d.Status = "Dev", "Acme", ""
	require.NoError(t, d.Validate())
	assert.Equal(t, StatusWishlist, d.Status)

	rec := d.Record("42")
	assert.Equal(t, ID("42"), rec.ID)
	assert.Equal(t, d, DraftFromRecord(rec))
}

func TestCollection(t *testing.T) {
	c := Collection{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, c.IndexOf("b"))
	assert.Equal(t, -1, c.IndexOf("z"))

	rec, ok := c.Find("a")
	assert.True(t, ok)
	assert.Equal(t, ID("a"), rec.ID)

	cl := c.Clone()
	cl[0].JobTitle = "changed"
	assert.Empty(t, c[0].JobTitle)
}
