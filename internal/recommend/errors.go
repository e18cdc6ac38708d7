// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recommendation taxonomy. Use errors.Is to classify.
var (
	// ErrInvalidInputCount is returned when the number of references is out of range.
	ErrInvalidInputCount = errors.New("invalid number of reference anime")

	// ErrUnresolvedReference is returned when a reference does not exist upstream.
	ErrUnresolvedReference = errors.New("reference anime could not be resolved")

	// ErrEmptyCandidatePool is returned when no candidates were aggregated.
	ErrEmptyCandidatePool = errors.New("no recommendations found")

	// ErrUpstreamFailure is returned when the resolver failed for reasons
	// unrelated to the specific reference. Callers may retry.
	ErrUpstreamFailure = errors.New("upstream service failure")
)

// InputCountError reports an out-of-range reference count.
type InputCountError struct {
	Got int
	Min int
	Max int
}

func (e *InputCountError) Error() string {
	return fmt.Sprintf("%s: got %d, want between %d and %d", ErrInvalidInputCount, e.Got, e.Min, e.Max)
}

// Is reports whether target is ErrInvalidInputCount.
func (e *InputCountError) Is(target error) bool {
	return target == ErrInvalidInputCount
}

// UnresolvedReferenceError identifies the reference input that could not be found.
type UnresolvedReferenceError struct {
	Ref Reference
	Err error
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnresolvedReference, e.Ref)
}

// Is reports whether target is ErrUnresolvedReference.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return e.Err
}

// UpstreamError wraps a resolver failure that is not specific to the input.
type UpstreamError struct {
	Ref Reference
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s while resolving %s: %v", ErrUpstreamFailure, e.Ref, e.Err)
}

// Is reports whether target is ErrUpstreamFailure.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Retryable is always true; upstream failures are transient by definition.
func (e *UpstreamError) Retryable() bool {
	return true
}
