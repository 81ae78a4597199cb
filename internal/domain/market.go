package domain

import (
	"fmt"
	"strings"
	"time"
)

// marketIDPrefix marks markets tied to real-world sporting events. Market IDs
// follow the format "sports_<event_id>_<slug>".
const marketIDPrefix = "sports_"

// Outcome is the resolution of a binary (draw-capable) prediction market.
// By platform convention YES corresponds to the home team winning; the same
// convention is applied at market-creation time, and the reconciler has no
// other way to recover which side was "home".
type Outcome string

const (
	OutcomeYes  Outcome = "YES"
	OutcomeNo   Outcome = "NO"
	OutcomeDraw Outcome = "DRAW"
	// OutcomeNone means the market is not yet decidable.
	OutcomeNone Outcome = ""
)

// Market is a prediction market as reported by the external ledger. The
// reconciler never mutates markets directly; it only submits resolutions.
type Market struct {
	ID             string
	Question       string
	ResolutionTime int64 // unix seconds; resolution may be attempted at or after this time
	Resolved       bool
	Outcome        Outcome
}

// Due reports whether the market's betting window has closed relative to now
// and the market is still awaiting resolution.
func (m Market) Due(now time.Time) bool {
	return !m.Resolved && m.ResolutionTime <= now.Unix()
}

// EventIDFromMarketID extracts the external sporting-event identifier from a
// market ID of the form "sports_<event_id>_<slug>". It returns
// ErrMalformedMarketID when the prefix or event segment is missing.
func EventIDFromMarketID(marketID string) (string, error) {
	rest, ok := strings.CutPrefix(marketID, marketIDPrefix)
	if !ok {
		return "", fmt.Errorf("market %q: %w", marketID, ErrMalformedMarketID)
	}
	eventID, _, _ := strings.Cut(rest, "_")
	if eventID == "" {
		return "", fmt.Errorf("market %q: %w", marketID, ErrMalformedMarketID)
	}
	return eventID, nil
}

// IsSportsMarket reports whether the market ID belongs to the sports family.
func IsSportsMarket(marketID string) bool {
	return strings.HasPrefix(marketID, marketIDPrefix)
}
