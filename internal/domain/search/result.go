// Package search defines the result and statistics types returned by the
// index service.
package search

import (
	"github.com/kailas-cloud/assetdex/internal/domain/document"
)

// Result is a single ranked hit with its component scores.
type Result struct {
	Document *document.Document `json:"document"`

	// Score is the final ranking score: the raw component score for
	// single-mode searches, the weighted fusion for hybrid search.
	Score float64 `json:"score"`

	TextScore   float64 `json:"text_score,omitempty"`
	VectorScore float64 `json:"vector_score,omitempty"`

	// Highlights are "field: term" strings built from match metadata.
	Highlights []string `json:"highlights,omitempty"`

	// MatchReason names the signal(s) that produced this hit.
	MatchReason string `json:"match_reason,omitempty"`
}

// Stats aggregates text-index and vector-store statistics.
type Stats struct {
	TotalDocuments   int     `json:"total_documents"`
	TotalTerms       int     `json:"total_terms"`
	AvgTermsPerDoc   float64 `json:"avg_terms_per_doc"`
	VisualEmbeddings int     `json:"visual_embeddings"`
	TextEmbeddings   int     `json:"text_embeddings"`
	VisualDimension  int     `json:"visual_dimension,omitempty"`
	TextDimension    int     `json:"text_dimension,omitempty"`
}
