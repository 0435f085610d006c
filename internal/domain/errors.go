package domain

import "errors"

var (
	// ErrDocumentNotFound signals that no document maps to the requested id,
	// or that a similarity query targeted a document without the requested
	// embedding kind.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrIndexNotFound signals a missing index structure.
	ErrIndexNotFound = errors.New("index not found")
	// ErrSearchFailed signals a failed search execution.
	ErrSearchFailed = errors.New("search failed")
	// ErrVectorDimMismatch signals an embedding whose length differs from the
	// dimension already established for its store.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrSerialization signals a malformed persisted document.
	ErrSerialization = errors.New("serialization error")
	// ErrCorruptedIndex signals an inconsistent in-memory index; the caller
	// should rebuild from the durable store.
	ErrCorruptedIndex = errors.New("index corrupted")
)

// KeyPrefix namespaces every durable key written by assetdex.
const KeyPrefix = "assetdex:"
