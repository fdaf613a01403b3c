package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTier is returned for any tier value outside the three known ones.
var ErrInvalidTier = errors.New("invalid description tier")

// Tier is the requested length class of a generated description.
type Tier int

const (
	TierShort Tier = iota + 1
	TierStandard
	TierComplete
)

// tierAliases maps accepted tier values to tiers. The Portuguese names are
// accepted alongside the English ones.
var tierAliases = map[string]Tier{
	"short":    TierShort,
	"pequena":  TierShort,
	"pequeno":  TierShort,
	"standard": TierStandard,
	"simples":  TierStandard,
	"complete": TierComplete,
	"completa": TierComplete,
}

// ParseTier converts a form value into a Tier.
func ParseTier(s string) (Tier, error) {
	t, ok := tierAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
	return t, nil
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	return t >= TierShort && t <= TierComplete
}

// MaxTokens is the completion budget requested for the tier.
func (t Tier) MaxTokens() int {
	switch t {
	case TierShort:
		return 300
	case TierStandard:
		return 600
	case TierComplete:
		return 900
	default:
		return 0
	}
}

func (t Tier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierStandard:
		return "standard"
	case TierComplete:
		return "complete"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Tiers lists every valid tier in ascending length.
func Tiers() []Tier {
	return []Tier{TierShort, TierStandard, TierComplete}
}
