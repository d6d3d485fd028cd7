package store

import "github.com/khrees2412/jobtrack/pkg/models"

// Stats counts records per status
type Stats struct {
	Total     int
	Wishlist  int
	Applied   int
	Interview int
	Offers    int
	Rejected  int
}

// Tile is one summary counter shown above the job table
type Tile struct {
	Label string
	Value int
}

// ComputeStats counts c from scratch
func ComputeStats(c models.Collection) Stats {
	stats := Stats{Total: len(c)}
	for _, rec := range c {
		switch rec.Status {
		case models.StatusWishlist:
			stats.Wishlist++
		case models.StatusApplied:
			stats.Applied++
		case models.StatusInterview:
			stats.Interview++
		case models.StatusOffer:
			stats.Offers++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// Count returns the number of records with status st
func (s Stats) Count(st models.Status) int {
	switch st {
	case models.StatusWishlist:
		return s.Wishlist
	case models.StatusApplied:
		return s.Applied
	case models.StatusInterview:
		return s.Interview
	case models.StatusOffer:
		return s.Offers
	case models.StatusRejected:
		return s.Rejected
	}
	return 0
}

// Tiles returns the summary counters surfaced in the list view
func (s Stats) Tiles() []Tile {
	return []Tile{
		{Label: "Total", Value: s.Total},
		{Label: "Applied", Value: s.Applied},
		{Label: "Interview", Value: s.Interview},
		{Label: "Offers", Value: s.Offers},
	}
}
