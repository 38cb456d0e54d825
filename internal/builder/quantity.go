package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// QuantityPolicy decides what happens to an invalid line quantity.
type QuantityPolicy int

const (
	// QuantityClamp stores 0 for unparsable or non-positive input.
	QuantityClamp QuantityPolicy = iota
	// QuantityReject refuses the edit and leaves the line unchanged.
	QuantityReject
)

func (p QuantityPolicy) String() string {
	if p == QuantityReject {
		return "reject"
	}
	return "clamp"
}

// ParseQuantityPolicy accepts "clamp" (or empty) and "reject".
func ParseQuantityPolicy(s string) (QuantityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return QuantityClamp, nil
	case "reject":
		return QuantityReject, nil
	}
	return QuantityClamp, fmt.Errorf("unknown quantity policy %q", s)
}

// ParseQuantity parses free-text quantity input into a positive integer.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return n, nil
}
