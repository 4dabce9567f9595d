package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnknownDriver       = errors.New("unknown storage driver")
	ErrInvalidCriterion    = errors.New("invalid sort criterion")
	ErrAmbiguousIngredient = errors.New("ambiguous ingredient reference")
)
