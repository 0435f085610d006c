// Package batch defines the per-item outcome type for bulk operations.
package batch

import "github.com/google/uuid"

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of processing one item in a batch operation.
type Result struct {
	assetID uuid.UUID
	status  ItemStatus
	err     error
}

// NewOK creates a successful batch result.
func NewOK(assetID uuid.UUID) Result {
	return Result{assetID: assetID, status: StatusOK}
}

// NewError creates a failed batch result.
func NewError(assetID uuid.UUID, err error) Result {
	return Result{assetID: assetID, status: StatusError, err: err}
}

// AssetID returns the item's asset identifier.
func (r Result) AssetID() uuid.UUID { return r.assetID }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
