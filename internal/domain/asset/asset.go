// Package asset defines the ingestion-side asset record consumed by the
// index engine. Detection, extraction, and monitoring live in external
// collaborators; the engine only reads these fields.
package asset

import (
	"time"

	"github.com/google/uuid"
)

// Type is the closed set of asset categories. The set is fixed at compile
// time; switches over it must be exhaustive.
type Type string

const (
	Image    Type = "image"
	ThreeD   Type = "three_d"
	Audio    Type = "audio"
	Video    Type = "video"
	Document Type = "document"
	Archive  Type = "archive"
	Unknown  Type = "unknown"
)

// Label returns the lower-case searchable label for the asset type.
func (t Type) Label() string {
	switch t {
	case Image, ThreeD, Audio, Video, Document, Archive, Unknown:
		return string(t)
	}
	return string(Unknown)
}

// Valid reports whether t is one of the known categories.
func (t Type) Valid() bool {
	switch t {
	case Image, ThreeD, Audio, Video, Document, Archive, Unknown:
		return true
	}
	return false
}

// ImageMetadata holds image-specific technical fields.
type ImageMetadata struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// AudioMetadata holds audio-specific technical fields.
type AudioMetadata struct {
	Duration      float64 `json:"duration"` // seconds
	SampleRate    uint32  `json:"sample_rate"`
	Transcription string  `json:"transcription,omitempty"`
}

// VideoMetadata holds video-specific technical fields.
type VideoMetadata struct {
	Duration  float64 `json:"duration"` // seconds
	FrameRate float64 `json:"frame_rate"`
}

// Metadata groups the optional per-type metadata blocks.
type Metadata struct {
	Image *ImageMetadata `json:"image,omitempty"`
	Audio *AudioMetadata `json:"audio,omitempty"`
	Video *VideoMetadata `json:"video,omitempty"`
}

// Asset is the externally supplied asset record with stable identity.
type Asset struct {
	ID         uuid.UUID `json:"id"`
	Path       string    `json:"path"`
	Type       Type      `json:"type"`
	FileSize   uint64    `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	Tags       []string  `json:"tags,omitempty"`
	Metadata   Metadata  `json:"metadata"`

	// Optional preview produced by the ingestion pipeline.
	PreviewPath   string `json:"preview_path,omitempty"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`

	// Visual embedding when ingestion already carries one.
	Embedding []float32 `json:"embedding,omitempty"`
}
