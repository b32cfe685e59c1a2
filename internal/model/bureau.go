// Package model defines the core data structures shared by the report pipeline.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Bureau identifies one of the three consumer credit reporting agencies.
type Bureau string

// Bureau constants.
const (
	TransUnion Bureau = "transunion"
	Experian   Bureau = "experian"
	Equifax    Bureau = "equifax"
)

// AllBureaus lists the bureaus in their canonical processing order.
var AllBureaus = []Bureau{TransUnion, Experian, Equifax}

// ErrUnknownBureau is returned when a bureau name cannot be recognized.
var ErrUnknownBureau = errors.New("unknown bureau")

var bureauAliases = []struct {
	bureau  Bureau
	aliases []string
}{
	{TransUnion, []string{"transunion", "trans_union", "trans union", "tu", "tuc"}},
	{Experian, []string{"experian", "exp", "xpn"}},
	{Equifax, []string{"equifax", "efx", "eqf"}},
}

// ParseBureau resolves a bureau from its name or a common abbreviation.
func ParseBureau(name string) (Bureau, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range bureauAliases {
		for _, alias := range entry.aliases {
			if n == alias {
				return entry.bureau, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBureau, name)
}

// DisplayName returns the bureau's brand spelling.
func (b Bureau) DisplayName() string {
	switch b {
	case TransUnion:
		return "TransUnion"
	case Experian:
		return "Experian"
	case Equifax:
		return "Equifax"
	default:
		return string(b)
	}
}

// IsValid reports whether b is one of the known bureaus.
func (b Bureau) IsValid() bool {
	for _, known := range AllBureaus {
		if b == known {
			return true
		}
	}
	return false
}
