package models

import "errors"

// ErrRouteMismatch is returned when leg 1 does not arrive where leg 2 departs.
var ErrRouteMismatch = errors.New("flights are not connected")

// ErrExhaustedPool is returned when a leg-1 occurrence needs a match but every
// leg-2 occurrence has already been used.
var ErrExhaustedPool = errors.New("leg 2 candidate pool exhausted")

// ErrEmptyInput is returned when statistics are requested over no connections.
var ErrEmptyInput = errors.New("no connections to aggregate")

// ErrMalformedRecord is returned when the flight page payload lacks a required field.
var ErrMalformedRecord = errors.New("malformed flight record")

// ErrNoFlightData is returned when the flight page carries no bootstrap payload.
var ErrNoFlightData = errors.New("no flight data in page")

var (
	ErrInvalidFlightCode = errors.New("invalid flight code")
	ErrUnknownAirline    = errors.New("unknown airline")
)
