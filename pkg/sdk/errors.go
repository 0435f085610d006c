package sdk

import "github.com/kailas-cloud/assetdex/internal/domain"

// Sentinel errors re-exported for errors.Is checks on SDK results.
var (
	// ErrDocumentNotFound signals that no document maps to the requested
	// asset, or that a similarity query targeted a document without the
	// requested embedding kind.
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	// ErrIndexNotFound signals a missing index structure.
	ErrIndexNotFound = domain.ErrIndexNotFound
	// ErrSearchFailed signals a failed search execution.
	ErrSearchFailed = domain.ErrSearchFailed
	// ErrVectorDimMismatch signals an embedding whose length differs from
	// the dimension already established for its store.
	ErrVectorDimMismatch = domain.ErrVectorDimMismatch
	// ErrSerialization signals a malformed persisted document.
	ErrSerialization = domain.ErrSerialization
	// ErrCorruptedIndex signals an inconsistent in-memory index.
	ErrCorruptedIndex = domain.ErrCorruptedIndex
)
