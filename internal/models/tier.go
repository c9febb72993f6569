// ABOUTME: DeficiencyTier enum and the fraction-of-target classifier.
// ABOUTME: Tiers are totally ordered from Critical (worst) to Optimal (best).
package models

import (
	"fmt"
	"strings"
)

// DeficiencyTier is a 5-level severity for a nutrient's percent of target.
type DeficiencyTier int

const (
	TierCritical DeficiencyTier = iota
	TierDeficient
	TierLow
	TierAdequate
	TierOptimal
)

// Classification thresholds, as fractions of the adjusted target.
const (
	OptimalThreshold   = 0.80
	AdequateThreshold  = 0.60
	LowThreshold       = 0.40
	DeficientThreshold = 0.15
)

var tierKeys = map[DeficiencyTier]string{
	TierCritical:  "critical",
	TierDeficient: "deficient",
	TierLow:       "low",
	TierAdequate:  "adequate",
	TierOptimal:   "optimal",
}

// AllTiers lists tiers from worst to best.
var AllTiers = []DeficiencyTier{TierCritical, TierDeficient, TierLow, TierAdequate, TierOptimal}

// Classify maps a fraction of target to a tier.
func Classify(fraction float64) DeficiencyTier {
	switch {
	case fraction >= OptimalThreshold:
		return TierOptimal
	case fraction >= AdequateThreshold:
		return TierAdequate
	case fraction >= LowThreshold:
		return TierLow
	case fraction >= DeficientThreshold:
		return TierDeficient
	default:
		return TierCritical
	}
}

// NeedsBadge reports whether the UI should highlight this tier.
func (t DeficiencyTier) NeedsBadge() bool {
	return t <= TierLow
}

// Label returns the capitalized display label.
func (t DeficiencyTier) Label() string {
	key := t.String()
	return strings.ToUpper(key[:1]) + key[1:]
}

// String returns the storage key.
func (t DeficiencyTier) String() string {
	if key, ok := tierKeys[t]; ok {
		return key
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier resolves a storage key.
func ParseTier(s string) (DeficiencyTier, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for t, key := range tierKeys {
		if key == needle {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown deficiency tier: %s", s)
}

// MarshalText encodes the tier as its storage key.
func (t DeficiencyTier) MarshalText() ([]byte, error) {
	if _, ok := tierKeys[t]; !ok {
		return nil, fmt.Errorf("invalid deficiency tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a storage key.
func (t *DeficiencyTier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
