package domain

import (
	"fmt"
	"time"
)

// PriorityTier is a discrete urgency bucket derived from time-to-due-date.
type PriorityTier int

// Priority tiers, lowest urgency first.
const (
	TierNormal PriorityTier = iota
	TierMedium
	TierHigh
	TierUrgent
)

// String returns the tier name.
func (t PriorityTier) String() string {
	switch t {
	case TierUrgent:
		return "urgent"
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierNormal:
		return "normal"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// PriorityThreshold maps an upper edge in days to a tier. An assignment
// falls in the bucket when its due delta is strictly below MaxDays days.
type PriorityThreshold struct {
	MaxDays int
	Tier    PriorityTier
}

// PriorityConfig classifies a due-date delta into a tier. Thresholds are
// checked in ascending order and the first match wins; deltas beyond the
// last threshold get the Default tier. Exactly on a threshold falls into
// the next bucket up, so a delta of exactly one day is high, not urgent.
type PriorityConfig struct {
	Thresholds []PriorityThreshold
	Default    PriorityTier
}

// DefaultPriorityConfig returns the standard day thresholds:
// under 1 day urgent, under 3 days high, under 7 days medium, else normal.
func DefaultPriorityConfig() PriorityConfig {
	return PriorityConfig{
		Thresholds: []PriorityThreshold{
			{MaxDays: 1, Tier: TierUrgent},
			{MaxDays: 3, Tier: TierHigh},
			{MaxDays: 7, Tier: TierMedium},
		},
		Default: TierNormal,
	}
}

// Validate checks that thresholds are positive and strictly ascending.
func (c PriorityConfig) Validate() error {
	prev := 0
	for i, th := range c.Thresholds {
		if th.MaxDays <= prev {
			return fmt.Errorf("%w: priority thresholds must be strictly ascending (index %d)", ErrInvalidInput, i)
		}
		prev = th.MaxDays
	}
	return nil
}

// Classify maps the delta between dueAt and now to a tier. The caller is
// responsible for excluding past due dates; negative deltas classify as
// the first bucket.
func (c PriorityConfig) Classify(dueAt, now time.Time) PriorityTier {
	delta := dueAt.Sub(now)
	for _, th := range c.Thresholds {
		if delta < time.Duration(th.MaxDays)*24*time.Hour {
			return th.Tier
		}
	}
	return c.Default
}
