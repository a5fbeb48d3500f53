// Package convert provides checked integer conversions for values that
// cross signedness boundaries, such as retry counts used as shift amounts.
package convert

import "fmt"

// IntToUint converts an int to uint, returning an error for negative input.
func IntToUint(v int) (uint, error) {
	if v < 0 {
		return 0, fmt.Errorf("cannot convert negative int to uint: %d", v)
	}
	return uint(v), nil
}

// IntToUintSafe converts an int to uint, panicking for negative input.
// Callers must guarantee non-negative values, like a retry counter that
// starts at one.
func IntToUintSafe(v int) uint {
	if v < 0 {
		panic(fmt.Sprintf("cannot convert negative int to uint: %d", v))
	}
	return uint(v)
}

// IntToUintClamped converts an int to uint, clamping negative values to 0.
func IntToUintClamped(v int) uint {
	if v < 0 {
		return 0
	}
	return uint(v)
}
