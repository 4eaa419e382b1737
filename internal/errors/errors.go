// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/errors/errors.go
// Summary: Sentinel errors shared by the layout engine, configuration and protocol layers.
// Usage: Callers categorise failures with errors.Is against the values below.
// Notes: This package must not import other internal packages.

// Package errors defines the sentinel errors used across texeltile.
package errors

import "errors"

var (
	// ErrInvalidCurveConfig indicates curve parameters that cannot produce a
	// well-defined progress function (non-monotonic Bézier x, bad spring values).
	ErrInvalidCurveConfig = errors.New("invalid curve configuration")

	// ErrUnknownEasing indicates an easing name that is not registered.
	ErrUnknownEasing = errors.New("unknown easing")

	// ErrUnknownLayout indicates a layout name that is not one of the known algorithms.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrUnknownInsertStrategy indicates an unsupported window insertion policy.
	ErrUnknownInsertStrategy = errors.New("unknown insert strategy")

	// ErrUnknownDirection indicates an unsupported workspace switch direction.
	ErrUnknownDirection = errors.New("unknown switch direction")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrConfigNil indicates that a nil config was passed to validation or reload.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigNotFound indicates that an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrOutputExists indicates an attempt to attach an output name twice.
	ErrOutputExists = errors.New("output already attached")

	// ErrOutputNotFound indicates the requested output is not attached.
	ErrOutputNotFound = errors.New("output not found")

	// ErrTileNotFound indicates that no tile wraps the requested window.
	ErrTileNotFound = errors.New("tile not found")

	// ErrWorkspaceIndex indicates a workspace index outside the output's range.
	ErrWorkspaceIndex = errors.New("workspace index out of range")

	// ErrNonFiniteState indicates an animation produced NaN or infinite state
	// and was forced to its end value.
	ErrNonFiniteState = errors.New("animation state is not finite")

	// ErrProtocol indicates a malformed protocol payload.
	ErrProtocol = errors.New("protocol error")

	// ErrInvalidArgument indicates a bad command-line or request value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidScript indicates a simulation script that cannot be run.
	ErrInvalidScript = errors.New("invalid simulation script")
)

// Is reports whether any error in err's chain matches target.
// It mirrors the standard library so callers only import one errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
