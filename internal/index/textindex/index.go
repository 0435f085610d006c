// Package textindex implements full-text retrieval over asset documents via
// an in-memory inverted index with TF-IDF scoring and per-field boosts.
//
// The index is not safe for concurrent use on its own; the index service
// serializes access behind a single lock.
package textindex

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain/document"
)

// minTermLength is the shortest token kept by the canonical tokenizer.
const minTermLength = 2

// Phrase-proximity multipliers for multi-term queries. Documents containing
// every query term get the all-terms boost; multi-term queries additionally
// get the proximity boost. Approximates phrase matching without positions.
const (
	allTermsBoost  = 1.5
	proximityBoost = 1.2
)

// fieldBoosts is the empirically fixed per-field relevance table.
var fieldBoosts = map[string]float64{
	"filename":       2.0,
	"title":          1.8,
	"tags":           2.5,
	"ai_tags":        2.0,
	"description":    1.5,
	"transcription":  1.8,
	"ai_caption":     1.6,
	"extracted_text": 1.4,
	"asset_type":     1.2,
}

// occurrence records one term hit inside a document field.
type occurrence struct {
	field    string
	position int
	boost    float64
}

// FieldMatch describes one matched occurrence, used for highlights.
type FieldMatch struct {
	Field    string
	Term     string
	Position int
	Score    float64
}

// Match is one scored document returned by Search.
type Match struct {
	DocumentID uuid.UUID
	Score      float64
	Fields     []FieldMatch
}

// Stats summarizes the index contents.
type Stats struct {
	TotalTerms     int
	TotalDocuments int
	AvgTermsPerDoc float64
}

// Index is an inverted text index: term -> document -> occurrences, plus a
// reverse document -> terms map so removal is O(terms in document).
type Index struct {
	terms          map[string]map[uuid.UUID][]occurrence
	documentTerms  map[uuid.UUID]map[string]struct{}
	minQueryLength int
}

// New creates an empty index. Queries shorter than minQueryLength return no
// results.
func New(minQueryLength int) *Index {
	if minQueryLength <= 0 {
		minQueryLength = minTermLength
	}
	return &Index{
		terms:          make(map[string]map[uuid.UUID][]occurrence),
		documentTerms:  make(map[uuid.UUID]map[string]struct{}),
		minQueryLength: minQueryLength,
	}
}

// Add indexes a document, replacing any prior entry for the same id. The
// remove-then-add makes reindexing idempotent: no stale postings survive.
func (ix *Index) Add(doc *document.Document) {
	ix.Remove(doc.ID)

	seen := make(map[string]struct{})

	ix.indexField(doc.ID, "filename", doc.Filename, seen)
	ix.indexField(doc.ID, "title", doc.Title, seen)
	ix.indexField(doc.ID, "tags", strings.Join(doc.Tags, " "), seen)
	ix.indexField(doc.ID, "ai_tags", strings.Join(doc.AITags, " "), seen)
	ix.indexField(doc.ID, "description", doc.Description, seen)
	ix.indexField(doc.ID, "transcription", doc.Transcription, seen)
	ix.indexField(doc.ID, "ai_caption", doc.AICaption, seen)
	ix.indexField(doc.ID, "extracted_text", doc.ExtractedText, seen)
	ix.indexField(doc.ID, "asset_type", doc.AssetType.Label(), seen)

	ix.documentTerms[doc.ID] = seen
}

// Remove deletes every posting for the document. No-op for unknown ids.
func (ix *Index) Remove(id uuid.UUID) {
	terms, ok := ix.documentTerms[id]
	if !ok {
		return
	}
	for term := range terms {
		postings, ok := ix.terms[term]
		if !ok {
			continue
		}
		delete(postings, id)
		if len(postings) == 0 {
			delete(ix.terms, term)
		}
	}
	delete(ix.documentTerms, id)
}

// Search scores documents against the query and returns up to maxResults
// matches, best first. Queries below the minimum length or that tokenize to
// nothing return an empty slice.
func (ix *Index) Search(query string, maxResults int) []Match {
	if len(query) < ix.minQueryLength {
		return nil
	}
	queryTerms := Tokenize(query)
	if len(queryTerms) == 0 {
		return nil
	}

	scores := make(map[uuid.UUID]float64)
	fields := make(map[uuid.UUID][]FieldMatch)

	for _, term := range queryTerms {
		postings, ok := ix.terms[term]
		if !ok {
			continue
		}
		for docID, occs := range postings {
			termScore := ix.termScore(occs, len(postings))
			scores[docID] += termScore

			for _, occ := range occs {
				fields[docID] = append(fields[docID], FieldMatch{
					Field:    occ.field,
					Term:     term,
					Position: occ.position,
					Score:    termScore * occ.boost,
				})
			}
		}
	}

	if len(queryTerms) > 1 {
		ix.boostPhraseMatches(queryTerms, scores)
	}

	results := make([]Match, 0, len(scores))
	for docID, score := range scores {
		results = append(results, Match{
			DocumentID: docID,
			Score:      score,
			Fields:     fields[docID],
		})
	}

	// Descending score, document id as a deterministic tie-break.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID.String() < results[j].DocumentID.String()
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// Stats returns term and document counts.
func (ix *Index) Stats() Stats {
	total := 0
	for _, terms := range ix.documentTerms {
		total += len(terms)
	}
	avg := 0.0
	if len(ix.documentTerms) > 0 {
		avg = float64(total) / float64(len(ix.documentTerms))
	}
	return Stats{
		TotalTerms:     len(ix.terms),
		TotalDocuments: len(ix.documentTerms),
		AvgTermsPerDoc: avg,
	}
}

// Clear drops every posting.
func (ix *Index) Clear() {
	ix.terms = make(map[string]map[uuid.UUID][]occurrence)
	ix.documentTerms = make(map[uuid.UUID]map[string]struct{})
}

func (ix *Index) indexField(docID uuid.UUID, field, text string, seen map[string]struct{}) {
	if text == "" {
		return
	}
	boost := fieldBoosts[field]

	for position, term := range Tokenize(text) {
		seen[term] = struct{}{}

		postings, ok := ix.terms[term]
		if !ok {
			postings = make(map[uuid.UUID][]occurrence)
			ix.terms[term] = postings
		}
		postings[docID] = append(postings[docID], occurrence{
			field:    field,
			position: position,
			boost:    boost,
		})
	}
}

// termScore computes tf * idf * avgBoost for one term in one document.
// docFreq is the number of documents containing the term.
func (ix *Index) termScore(occs []occurrence, docFreq int) float64 {
	tf := float64(len(occs))
	idf := math.Log(float64(len(ix.documentTerms)) / (float64(docFreq) + 1))

	boostSum := 0.0
	for _, occ := range occs {
		boostSum += occ.boost
	}
	avgBoost := boostSum / float64(len(occs))

	return tf * idf * avgBoost
}

// boostPhraseMatches multiplies the score of documents containing every
// query term.
func (ix *Index) boostPhraseMatches(queryTerms []string, scores map[uuid.UUID]float64) {
	for docID := range scores {
		hasAll := true
		for _, term := range queryTerms {
			if _, ok := ix.terms[term][docID]; !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			scores[docID] *= allTermsBoost
			scores[docID] *= proximityBoost
		}
	}
}

// Tokenize is the canonical tokenizer shared by indexing and queries:
// lower-case, whitespace split, strip everything but alphanumerics, '-' and
// '_', drop tokens shorter than two characters.
func Tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0, len(words))
	for _, word := range words {
		term := strings.Map(func(r rune) rune {
			if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, word)
		if len(term) >= minTermLength {
			terms = append(terms, term)
		}
	}
	return terms
}
