// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package league

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default point values used when the organizer leaves a field blank
const (
	DefaultWinPoints  = 3
	DefaultTiePoints  = 1
	DefaultLossPoints = 0
)

var ErrInvalidRules = errors.New("invalid league rules")

// Rules are the per-outcome point values of a league
type Rules struct {
	WinPoints  float64 `json:"win_points"`
	TiePoints  float64 `json:"tie_points"`
	LossPoints float64 `json:"loss_points"`
}

// DefaultRules returns the common 3/1/0 scoring
func DefaultRules() Rules {
	return Rules{
		WinPoints:  DefaultWinPoints,
		TiePoints:  DefaultTiePoints,
		LossPoints: DefaultLossPoints,
	}
}

// ParseRules parses decimal point values. A blank value falls back to its default.
func ParseRules(win, tie, loss string) (Rules, error) {
	var rules Rules
	var err error

	if rules.WinPoints, err = parsePoints("win_points", win, DefaultWinPoints); err != nil {
		return Rules{}, err
	}
	if rules.TiePoints, err = parsePoints("tie_points", tie, DefaultTiePoints); err != nil {
		return Rules{}, err
	}
	if rules.LossPoints, err = parsePoints("loss_points", loss, DefaultLossPoints); err != nil {
		return Rules{}, err
	}

	return rules, rules.Validate()
}

// Validate rejects values that would poison every accumulated total
func (r Rules) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"win_points", r.WinPoints},
		{"tie_points", r.TiePoints},
		{"loss_points", r.LossPoints},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidRules, f.name)
		}
	}
	return nil
}

func parsePoints(field, raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidRules, field)
	}
	return value, nil
}
