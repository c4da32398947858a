// Package countdown classifies auction listings against the current time and
// renders the remaining-time strings shown on listing surfaces. All functions
// are pure: callers pass now explicitly, so a once-per-second refresh loop can
// recompute from the wall clock without accumulating drift.
package countdown

import (
	"fmt"
	"time"

	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/bidora/storefront-server/pkg/types"
)

// Phase is the lifecycle classification of a listing relative to now.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseActive     Phase = "active"
	PhaseEndingSoon Phase = "ending_soon"
	PhaseEnded      Phase = "ended"
)

// DefaultEndingSoonThreshold flags listings as urgent inside this window
// before their end date. Overridable through Catalog.EndingSoonThreshold.
const DefaultEndingSoonThreshold = 2 * time.Hour

// Granularity selects how fine the remaining-time string is rendered.
// Cards refresh once a minute and truncate to minutes; the detail view
// refreshes every second and shows seconds.
type Granularity int

const (
	Coarse Granularity = iota
	Fine
)

// Display labels for the boundary states.
const (
	LabelEnded       = "Auction Ended"
	LabelStartingNow = "Starting now"
)

// Classification is the result of classifying one listing at one instant.
// Remaining counts down to the start date for not-started listings and to the
// end date otherwise; it is never negative.
type Classification struct {
	Phase     Phase
	Remaining time.Duration
}

// Classify determines the lifecycle phase of a listing at the given instant.
// A non-positive threshold falls back to DefaultEndingSoonThreshold.
// Listings with a missing date or an inverted window fail with an
// invalid-timestamp error; callers drop them from time-based views.
func Classify(now time.Time, listing types.Listing, threshold time.Duration) (Classification, error) {
	if listing.StartDate.IsZero() || listing.EndDate.IsZero() {
		return Classification{}, errors.New(errors.ErrInvalidTimestamp, "listing has a missing start or end date")
	}
	if !listing.StartDate.Before(listing.EndDate) {
		return Classification{}, errors.New(errors.ErrInvalidTimestamp, "listing start date is not before its end date")
	}
	if threshold <= 0 {
		threshold = DefaultEndingSoonThreshold
	}

	if now.Before(listing.StartDate) {
		return Classification{Phase: PhaseNotStarted, Remaining: listing.StartDate.Sub(now)}, nil
	}
	if !now.Before(listing.EndDate) {
		return Classification{Phase: PhaseEnded}, nil
	}

	remaining := listing.EndDate.Sub(now)
	phase := PhaseActive
	if remaining < threshold {
		phase = PhaseEndingSoon
	}
	return Classification{Phase: phase, Remaining: remaining}, nil
}

// Display renders the remaining-time string for the classification.
func (c Classification) Display(g Granularity) string {
	switch {
	case c.Phase == PhaseEnded:
		return LabelEnded
	case c.Remaining <= 0:
		// Race at the start boundary between recomputes.
		if c.Phase == PhaseNotStarted {
			return LabelStartingNow
		}
		return LabelEnded
	}
	return FormatRemaining(c.Remaining, g)
}

// Live reports whether the listing still accepts attention: anything that has
// not ended yet.
func (c Classification) Live() bool {
	return c.Phase != PhaseEnded
}

// FormatRemaining renders a duration with non-negative components:
// "2d 5h" above a day, "5h 12m" above an hour, then "12m 30s" (fine) or
// "12m" (coarse), and bare seconds under a minute at fine granularity.
func FormatRemaining(d time.Duration, g Granularity) string {
	if d < 0 {
		d = 0
	}

	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	seconds := int((d % time.Minute) / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case g == Coarse:
		return fmt.Sprintf("%dm", minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
