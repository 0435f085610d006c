// Package document holds the search-optimized document derived from one
// asset record. A document is replaced wholesale on content change; partial
// field patching never bypasses the derived-field recompute.
package document

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain/asset"
)

// recentBonusWindow is the age below which a document gets the freshness
// bonus in its quality score.
const recentBonusWindow = 7 * 24 * time.Hour

// Document is the flattened, denormalized representation of an indexed
// asset. Every textual field feeds SearchText; every mutation goes through a
// method that recomputes it.
type Document struct {
	ID      uuid.UUID `json:"id"`
	AssetID uuid.UUID `json:"asset_id"`

	FilePath  string     `json:"file_path"`
	Filename  string     `json:"filename"`
	AssetType asset.Type `json:"asset_type"`

	FileSize   uint64    `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	IndexedAt  time.Time `json:"indexed_at"`

	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Transcription string   `json:"transcription,omitempty"`
	ExtractedText string   `json:"extracted_text,omitempty"`

	AITags         []string `json:"ai_tags,omitempty"`
	AICaption      string   `json:"ai_caption,omitempty"`
	DominantColors []string `json:"dominant_colors,omitempty"`

	Width      uint32  `json:"width,omitempty"`
	Height     uint32  `json:"height,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
	SampleRate uint32  `json:"sample_rate,omitempty"`
	FrameRate  float64 `json:"frame_rate,omitempty"`

	PreviewPath   string `json:"preview_path,omitempty"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`

	VisualEmbedding []float32 `json:"visual_embedding,omitempty"`
	TextEmbedding   []float32 `json:"text_embedding,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`

	// Derived fields. SearchText is the lower-cased concatenation of all
	// textual content; QualityScore ranks richer documents higher.
	SearchText   string  `json:"search_text"`
	QualityScore float64 `json:"quality_score"`
}

// FromAsset builds a new document from an asset record with derived fields
// computed once. The document gets a fresh id distinct from the asset id.
func FromAsset(a *asset.Asset) *Document {
	now := time.Now().UTC()
	filename := filepath.Base(a.Path)

	doc := &Document{
		ID:            uuid.New(),
		AssetID:       a.ID,
		FilePath:      a.Path,
		Filename:      filename,
		AssetType:     a.Type,
		FileSize:      a.FileSize,
		CreatedAt:     a.CreatedAt,
		ModifiedAt:    a.ModifiedAt,
		IndexedAt:     now,
		Title:         filename,
		Tags:          append([]string(nil), a.Tags...),
		PreviewPath:   a.PreviewPath,
		ThumbnailPath: a.ThumbnailPath,
		QualityScore:  1.0,
	}

	if img := a.Metadata.Image; img != nil {
		doc.Width = img.Width
		doc.Height = img.Height
	}
	if au := a.Metadata.Audio; au != nil {
		doc.Duration = au.Duration
		doc.SampleRate = au.SampleRate
		doc.Transcription = au.Transcription
	}
	if v := a.Metadata.Video; v != nil {
		doc.Duration = v.Duration
		doc.FrameRate = v.FrameRate
	}
	if len(a.Embedding) > 0 {
		doc.VisualEmbedding = append([]float32(nil), a.Embedding...)
	}

	doc.UpdateSearchText()
	return doc
}

// UpdateSearchText recomputes the combined lower-cased search text. Must be
// called after any mutation of the fields it is built from.
func (d *Document) UpdateSearchText() {
	parts := make([]string, 0, 12+len(d.Tags)+len(d.AITags)+len(d.DominantColors))

	parts = append(parts, d.Filename, d.Title)

	for _, s := range []string{d.Description, d.Transcription, d.ExtractedText, d.AICaption} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	parts = append(parts, d.Tags...)
	parts = append(parts, d.AITags...)
	parts = append(parts, d.DominantColors...)

	parts = append(parts, d.AssetType.Label())

	if d.Width > 0 && d.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", d.Width, d.Height))
	}

	d.SearchText = strings.ToLower(strings.Join(parts, " "))
}

// AddTags unions new tags into the document, deduplicated and sorted for
// deterministic output, and recomputes the search text.
func (d *Document) AddTags(tags []string) {
	d.Tags = mergeTags(d.Tags, tags)
	d.UpdateSearchText()
}

// AddAITags unions new AI-generated tags, deduplicated and sorted, and
// recomputes the search text.
func (d *Document) AddAITags(tags []string) {
	d.AITags = mergeTags(d.AITags, tags)
	d.UpdateSearchText()
}

// SetTranscription replaces the transcription and recomputes the search text.
func (d *Document) SetTranscription(t string) {
	d.Transcription = t
	d.UpdateSearchText()
}

// SetAICaption replaces the AI caption and recomputes the search text.
func (d *Document) SetAICaption(c string) {
	d.AICaption = c
	d.UpdateSearchText()
}

// SetVisualEmbedding replaces the visual embedding. Embeddings do not feed
// the search text, so no recompute happens here.
func (d *Document) SetVisualEmbedding(v []float32) {
	d.VisualEmbedding = append([]float32(nil), v...)
}

// SetTextEmbedding replaces the text embedding.
func (d *Document) SetTextEmbedding(v []float32) {
	d.TextEmbedding = append([]float32(nil), v...)
}

// AIUpdate is a partial update delivered by the AI-processing collaborator
// after initial indexing. Nil fields are left untouched.
type AIUpdate struct {
	Tags            []string
	Caption         *string
	Transcription   *string
	VisualEmbedding []float32
	TextEmbedding   []float32
}

// IsZero reports whether the update carries nothing.
func (u *AIUpdate) IsZero() bool {
	return len(u.Tags) == 0 && u.Caption == nil && u.Transcription == nil &&
		len(u.VisualEmbedding) == 0 && len(u.TextEmbedding) == 0
}

// ApplyAIUpdate merges the supplied AI results into the document and
// recomputes both derived fields.
func (d *Document) ApplyAIUpdate(u *AIUpdate) {
	if len(u.Tags) > 0 {
		d.AITags = mergeTags(d.AITags, u.Tags)
	}
	if u.Caption != nil {
		d.AICaption = *u.Caption
	}
	if u.Transcription != nil {
		d.Transcription = *u.Transcription
	}
	if len(u.VisualEmbedding) > 0 {
		d.SetVisualEmbedding(u.VisualEmbedding)
	}
	if len(u.TextEmbedding) > 0 {
		d.SetTextEmbedding(u.TextEmbedding)
	}

	d.UpdateSearchText()
	d.CalculateQualityScore()
}

// CalculateQualityScore recomputes the ranking quality score from the
// document's current fields: base 1.0 plus additive bonuses for richness.
func (d *Document) CalculateQualityScore() {
	score := 1.0

	if d.Description != "" {
		score += 0.2
	}
	if n := len(d.Tags); n > 0 {
		score += 0.1 * minF(float64(n), 5)
	}
	if n := len(d.AITags); n > 0 {
		score += 0.1 * minF(float64(n), 3)
	}
	if d.Transcription != "" {
		score += 0.3
	}
	if len(d.VisualEmbedding) > 0 {
		score += 0.2
	}
	if len(d.TextEmbedding) > 0 {
		score += 0.2
	}
	if time.Since(d.CreatedAt) < recentBonusWindow {
		score += 0.1
	}

	d.QualityScore = score
}

func mergeTags(existing, incoming []string) []string {
	merged := append(append([]string(nil), existing...), incoming...)
	sort.Strings(merged)

	out := make([]string, 0, len(merged))
	for _, t := range merged {
		if t == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == t {
			continue
		}
		out = append(out, t)
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
