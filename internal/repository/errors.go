// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the ledger to distinguish between failure scenarios
// without inspecting SQL driver errors.
package repository

import "errors"

// ErrBikeNotFound is returned when a bike id does not resolve to a
// catalog row. Handlers translate this into an HTTP 404 response.
var ErrBikeNotFound = errors.New("bike not found")

// ErrLocationNotFound is returned when a pickup or dropoff location
// reference does not exist.
var ErrLocationNotFound = errors.New("location not found")

// ErrRentalNotFound is returned when a rental does not exist or does
// not belong to the calling user. The two cases are deliberately not
// distinguishable so that a foreign rental id reveals nothing.
var ErrRentalNotFound = errors.New("rental not found")

// ErrEmailExists is returned on signup when the email is already
// registered. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
