package vectorstore

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain"
	"github.com/kailas-cloud/assetdex/internal/domain/embedding"
)

const epsilon = 1e-6

func TestAdd_FixesDimensionOnFirstInsert(t *testing.T) {
	s := New()

	if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0})
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch, got %v", err)
	}

	// The failed insert must not have changed the store.
	st := s.Stats()
	if st.VisualCount != 1 || st.VisualDimension != 3 {
		t.Errorf("expected 1 vector of dim 3, got %+v", st)
	}
}

func TestAdd_KindsHaveIndependentDimensions(t *testing.T) {
	s := New()

	if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(embedding.Text, uuid.New(), []float32{1, 0}); err != nil {
		t.Fatalf("expected independent text dimension, got %v", err)
	}

	st := s.Stats()
	if st.VisualDimension != 4 || st.TextDimension != 2 {
		t.Errorf("expected dims 4/2, got %+v", st)
	}
}

func TestAdd_UnknownKind(t *testing.T) {
	s := New()

	err := s.Add(embedding.Kind("audio"), uuid.New(), []float32{1})
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestFindSimilar_IdenticalVector(t *testing.T) {
	s := New()

	id := uuid.New()
	vec := []float32{0.1, 0.2, 0.3, 0.4}
	if err := s.Add(embedding.Visual, id, vec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := s.FindSimilar(embedding.Visual, vec, 10, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].DocumentID != id {
		t.Errorf("expected %s, got %s", id, matches[0].DocumentID)
	}
	if matches[0].Similarity <= 0.99 {
		t.Errorf("expected near-perfect similarity, got %f", matches[0].Similarity)
	}
	if matches[0].Kind != embedding.Visual {
		t.Errorf("expected visual kind, got %s", matches[0].Kind)
	}
}

func TestFindSimilar_ScaleInvariant(t *testing.T) {
	s := New()

	id := uuid.New()
	if err := s.Add(embedding.Visual, id, []float32{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same direction, different magnitude: cosine must still be ~1.
	matches, err := s.FindSimilar(embedding.Visual, []float32{10, 20, 30}, 10, 0.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

func TestFindSimilar_MinSimilarityFilters(t *testing.T) {
	s := New()

	aligned := uuid.New()
	orthogonal := uuid.New()
	if err := s.Add(embedding.Visual, aligned, []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(embedding.Visual, orthogonal, []float32{0, 1}); err != nil {
		t.Fatal(err)
	}

	// Orthogonal vector has similarity 0 and must be filtered at 0.7.
	matches, err := s.FindSimilar(embedding.Visual, []float32{1, 0}, 10, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].DocumentID != aligned {
		t.Errorf("expected only the aligned vector, got %v", matches)
	}
}

func TestFindSimilar_OrderedBestFirst(t *testing.T) {
	s := New()

	best := uuid.New()
	second := uuid.New()
	if err := s.Add(embedding.Visual, best, []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(embedding.Visual, second, []float32{1, 1}); err != nil {
		t.Fatal(err)
	}

	matches, err := s.FindSimilar(embedding.Visual, []float32{1, 0}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].DocumentID != best || matches[1].DocumentID != second {
		t.Error("matches not ordered best first")
	}
	if matches[0].Similarity < matches[1].Similarity {
		t.Errorf("similarities out of order: %f < %f", matches[0].Similarity, matches[1].Similarity)
	}
}

func TestFindSimilar_TopKTruncates(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0}); err != nil {
			t.Fatal(err)
		}
	}

	matches, err := s.FindSimilar(embedding.Visual, []float32{1, 0}, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("expected 3 matches, got %d", len(matches))
	}
}

func TestFindSimilar_EmptyStore(t *testing.T) {
	s := New()

	matches, err := s.FindSimilar(embedding.Visual, []float32{1, 0}, 10, 0)
	if err != nil {
		t.Fatalf("expected no error on empty store, got %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestFindSimilar_QueryDimMismatch(t *testing.T) {
	s := New()
	if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0, 0}); err != nil {
		t.Fatal(err)
	}

	_, err := s.FindSimilar(embedding.Visual, []float32{1, 0}, 10, 0)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Fatalf("expected ErrVectorDimMismatch, got %v", err)
	}
}

func TestFindSimilarToDocument_ExcludesSelf(t *testing.T) {
	s := New()

	self := uuid.New()
	other := uuid.New()
	if err := s.Add(embedding.Visual, self, []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(embedding.Visual, other, []float32{1, 0.1}); err != nil {
		t.Fatal(err)
	}

	matches, err := s.FindSimilarToDocument(embedding.Visual, self, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].DocumentID != other {
		t.Error("expected the other document, not self")
	}
}

func TestFindSimilarToDocument_UnknownDocument(t *testing.T) {
	s := New()
	if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0}); err != nil {
		t.Fatal(err)
	}

	_, err := s.FindSimilarToDocument(embedding.Visual, uuid.New(), 10, 0)
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRemove_DeletesFromBothKinds(t *testing.T) {
	s := New()

	id := uuid.New()
	if err := s.Add(embedding.Visual, id, []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(embedding.Text, id, []float32{0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	s.Remove(id)

	st := s.Stats()
	if st.VisualCount != 0 || st.TextCount != 0 {
		t.Errorf("expected empty stores after remove, got %+v", st)
	}
	// Dimensions stay fixed after removal.
	if st.VisualDimension != 2 || st.TextDimension != 3 {
		t.Errorf("expected dimensions to persist, got %+v", st)
	}
}

func TestClear_ResetsDimensions(t *testing.T) {
	s := New()
	if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0}); err != nil {
		t.Fatal(err)
	}

	s.Clear()

	st := s.Stats()
	if st.VisualCount != 0 || st.VisualDimension != 0 {
		t.Errorf("expected reset store, got %+v", st)
	}

	// A new dimension can now be established.
	if err := s.Add(embedding.Visual, uuid.New(), []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("expected dimension reset after clear, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	out := Normalize([]float32{3, 4})

	if math.Abs(float64(out[0])-0.6) > epsilon || math.Abs(float64(out[1])-0.8) > epsilon {
		t.Errorf("expected [0.6 0.8], got %v", out)
	}

	var sum float64
	for _, x := range out {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1) > epsilon {
		t.Errorf("expected unit length, got %f", math.Sqrt(sum))
	}
}

func TestNormalize_ZeroVectorUnchanged(t *testing.T) {
	in := []float32{0, 0, 0}
	out := Normalize(in)

	for i, x := range out {
		if x != 0 {
			t.Errorf("expected zero at %d, got %f", i, x)
		}
	}

	// Must be a copy, not the same backing array.
	out[0] = 1
	if in[0] != 0 {
		t.Error("Normalize must not alias the input slice")
	}
}

func TestEuclideanDistance(t *testing.T) {
	d := EuclideanDistance([]float32{0, 0}, []float32{3, 4})
	if math.Abs(d-5) > epsilon {
		t.Errorf("expected 5, got %f", d)
	}

	if d := EuclideanDistance([]float32{1, 2}, []float32{1, 2}); d != 0 {
		t.Errorf("expected 0 for identical vectors, got %f", d)
	}
}

func TestManhattanDistance(t *testing.T) {
	d := ManhattanDistance([]float32{1, 2}, []float32{4, 6})
	if math.Abs(d-7) > epsilon {
		t.Errorf("expected 7, got %f", d)
	}
}
