package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and cache adapters return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record or cache key does not exist (or its TTL elapsed)
// - ErrConflict: uniqueness constraint rejected a write
// - ErrExpired: entry exists but is past its lifetime
// - ErrUnavailable: backing store temporarily unreachable
//
// For caller-input problems use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
