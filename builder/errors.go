// SPDX-License-Identifier: MIT
// Package: txpath/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Implementations attach method context with %w.
//   - Validation order: sizes first (ErrTooFewVertices), then ranges
//     (ErrInvalidProbability, ErrInvalidTimestamp), then RNG presence.

package builder

import "errors"

// ErrTooFewVertices indicates a size parameter below the constructor minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1], or label
// probabilities whose sum exceeds 1.
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrInvalidTimestamp indicates a negative timestamp bound or step.
var ErrInvalidTimestamp = errors.New("builder: invalid timestamp parameter")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a constructor could not be applied (nil
// constructor, or a core mutation failed).
var ErrConstructFailed = errors.New("builder: construction failed")
