package api

import (
	"encoding/json"
	"errors"
)

var errBadThreshold = errors.New("threshold must be a non-negative integer")

// parseThreshold accepts only whole non-negative numbers; fractional or
// negative input never reaches the store.
func parseThreshold(n json.Number) (int, error) {
	if n == "" {
		return 0, errBadThreshold
	}
	v, err := n.Int64()
	if err != nil || v < 0 {
		return 0, errBadThreshold
	}
	return int(v), nil
}
