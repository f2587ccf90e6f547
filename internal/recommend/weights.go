// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/newsprep/internal/validation"
)

// ErrInvalidWeights is returned for hybrid weights outside the simplex.
var ErrInvalidWeights = errors.New("invalid hybrid weights")

// weightTolerance absorbs float rounding in sums such as 0.7+0.3.
const weightTolerance = 1e-9

// Weights blends the hybrid signals. Alpha weights content similarity, Beta
// the collaborative count and the remainder 1-Alpha-Beta popularity.
type Weights struct {
	Alpha float64 `json:"alpha" validate:"gte=0,lte=1"`
	Beta  float64 `json:"beta" validate:"gte=0,lte=1"`
}

// DefaultWeights returns alpha=0.7, beta=0.2.
func DefaultWeights() Weights {
	return Weights{Alpha: 0.7, Beta: 0.2}
}

// NewWeights builds validated weights.
func NewWeights(alpha, beta float64) (Weights, error) {
	w := Weights{Alpha: alpha, Beta: beta}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate checks alpha >= 0, beta >= 0 and alpha+beta <= 1. The returned
// error wraps ErrInvalidWeights and a *validation.RequestValidationError
// describing the offending field.
func (w Weights) Validate() error {
	if verr := validation.ValidateStruct(w); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeights, verr)
	}
	if w.Alpha+w.Beta > 1+weightTolerance {
		verr := validation.NewFieldError("beta", "weightsum", w.Alpha+w.Beta,
			fmt.Sprintf("alpha + beta must not exceed 1, got %g", w.Alpha+w.Beta))
		return fmt.Errorf("%w: %w", ErrInvalidWeights, verr)
	}
	return nil
}

// PopularityWeight returns 1-Alpha-Beta, never negative.
func (w Weights) PopularityWeight() float64 {
	p := 1 - w.Alpha - w.Beta
	if p < 0 {
		return 0
	}
	return p
}
