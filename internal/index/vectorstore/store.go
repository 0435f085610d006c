// Package vectorstore implements nearest-neighbor retrieval over
// unit-normalized embedding vectors, kept in independent flat stores per
// embedding kind.
//
// Like the text index, the store is not safe for concurrent use on its own;
// the index service serializes access.
package vectorstore

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain"
	"github.com/kailas-cloud/assetdex/internal/domain/embedding"
)

// Match is one scored neighbor.
type Match struct {
	DocumentID uuid.UUID
	Similarity float64
	Kind       embedding.Kind
}

// Stats summarizes both kind stores.
type Stats struct {
	VisualCount     int
	TextCount       int
	VisualDimension int // 0 until the first visual insert
	TextDimension   int // 0 until the first text insert
}

// kindStore is a flat store of normalized vectors with a fixed dimension.
type kindStore struct {
	vectors map[uuid.UUID][]float32
	dim     int // fixed by the first insert
}

func newKindStore() *kindStore {
	return &kindStore{vectors: make(map[uuid.UUID][]float32)}
}

// Store keeps one kindStore per embedding kind.
type Store struct {
	visual *kindStore
	text   *kindStore
}

// New creates an empty vector store.
func New() *Store {
	return &Store{visual: newKindStore(), text: newKindStore()}
}

func (s *Store) byKind(kind embedding.Kind) (*kindStore, error) {
	switch kind {
	case embedding.Visual:
		return s.visual, nil
	case embedding.Text:
		return s.text, nil
	}
	return nil, fmt.Errorf("unknown embedding kind %q: %w", kind, domain.ErrIndexNotFound)
}

// Add stores the normalized vector for a document. The first insert into a
// kind fixes that kind's dimension; later inserts with a different length
// are rejected and leave the store unchanged.
func (s *Store) Add(kind embedding.Kind, docID uuid.UUID, vector []float32) error {
	ks, err := s.byKind(kind)
	if err != nil {
		return err
	}

	if ks.dim > 0 && len(vector) != ks.dim {
		return fmt.Errorf("%s embedding: expected dimension %d, got %d: %w",
			kind, ks.dim, len(vector), domain.ErrVectorDimMismatch)
	}
	if ks.dim == 0 {
		ks.dim = len(vector)
	}

	ks.vectors[docID] = Normalize(vector)
	return nil
}

// Remove deletes the document from both kind stores. No-op if absent.
func (s *Store) Remove(docID uuid.UUID) {
	delete(s.visual.vectors, docID)
	delete(s.text.vectors, docID)
}

// FindSimilar returns up to topK stored vectors of the given kind whose
// cosine similarity to the query is at least minSimilarity, best first.
// An empty store yields an empty result, not an error.
func (s *Store) FindSimilar(
	kind embedding.Kind, query []float32, topK int, minSimilarity float64,
) ([]Match, error) {
	ks, err := s.byKind(kind)
	if err != nil {
		return nil, err
	}
	if len(ks.vectors) == 0 {
		return nil, nil
	}
	if len(query) != ks.dim {
		return nil, fmt.Errorf("%s query: expected dimension %d, got %d: %w",
			kind, ks.dim, len(query), domain.ErrVectorDimMismatch)
	}

	normalized := Normalize(query)

	matches := make([]Match, 0, len(ks.vectors))
	for docID, vec := range ks.vectors {
		sim := dot(normalized, vec)
		if sim >= minSimilarity {
			matches = append(matches, Match{DocumentID: docID, Similarity: sim, Kind: kind})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].DocumentID.String() < matches[j].DocumentID.String()
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// FindSimilarToDocument uses the document's own stored vector as the query
// and excludes the document itself from the neighbors. Fails when the
// document has no embedding of the requested kind.
func (s *Store) FindSimilarToDocument(
	kind embedding.Kind, docID uuid.UUID, topK int, minSimilarity float64,
) ([]Match, error) {
	ks, err := s.byKind(kind)
	if err != nil {
		return nil, err
	}

	query, ok := ks.vectors[docID]
	if !ok {
		return nil, fmt.Errorf("no %s embedding for document %s: %w",
			kind, docID, domain.ErrDocumentNotFound)
	}

	matches, err := s.FindSimilar(kind, query, topK+1, minSimilarity)
	if err != nil {
		return nil, err
	}

	out := matches[:0]
	for _, m := range matches {
		if m.DocumentID != docID {
			out = append(out, m)
		}
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// Stats returns counts and established dimensions.
func (s *Store) Stats() Stats {
	return Stats{
		VisualCount:     len(s.visual.vectors),
		TextCount:       len(s.text.vectors),
		VisualDimension: s.visual.dim,
		TextDimension:   s.text.dim,
	}
}

// Clear drops every vector and resets both dimensions.
func (s *Store) Clear() {
	s.visual = newKindStore()
	s.text = newKindStore()
}

// Normalize returns the unit-length copy of the vector. A zero vector is
// returned unchanged to avoid division by zero.
func Normalize(vector []float32) []float32 {
	var sum float64
	for _, x := range vector {
		sum += float64(x) * float64(x)
	}
	magnitude := math.Sqrt(sum)

	out := make([]float32, len(vector))
	if magnitude == 0 {
		copy(out, vector)
		return out
	}
	for i, x := range vector {
		out[i] = float32(float64(x) / magnitude)
	}
	return out
}

// dot computes the dot product, which equals the cosine similarity when both
// sides are unit-normalized.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
