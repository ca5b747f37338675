package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into typed results.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in a store or cache
// - ErrIntegrity: downloaded data failed a size or structure check
// - ErrUnavailable: upstream source temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrIntegrity   = errors.New("data integrity check failed")
	ErrUnavailable = errors.New("unavailable")
)
