package sdk

import (
	"github.com/kailas-cloud/assetdex/internal/domain/asset"
	"github.com/kailas-cloud/assetdex/internal/domain/document"
	"github.com/kailas-cloud/assetdex/internal/domain/embedding"
	"github.com/kailas-cloud/assetdex/internal/domain/search"
)

// Domain types re-exported so SDK consumers never import internal packages.
type (
	// Asset is the ingestion-side asset record to index.
	Asset = asset.Asset
	// AssetType is the closed set of asset categories.
	AssetType = asset.Type
	// Metadata groups the optional per-type metadata blocks.
	Metadata = asset.Metadata
	// ImageMetadata holds image-specific technical fields.
	ImageMetadata = asset.ImageMetadata
	// AudioMetadata holds audio-specific technical fields.
	AudioMetadata = asset.AudioMetadata
	// VideoMetadata holds video-specific technical fields.
	VideoMetadata = asset.VideoMetadata

	// Document is the engine's searchable view of an asset.
	Document = document.Document
	// AIUpdate carries asynchronously produced AI enrichment results.
	AIUpdate = document.AIUpdate

	// Result is a single ranked search hit.
	Result = search.Result
	// Stats aggregates text-index and vector-store statistics.
	Stats = search.Stats

	// Kind selects which per-kind vector store an operation targets.
	Kind = embedding.Kind
)

// Asset categories.
const (
	Image   = asset.Image
	ThreeD  = asset.ThreeD
	Audio   = asset.Audio
	Video   = asset.Video
	Doc     = asset.Document
	Archive = asset.Archive
	Unknown = asset.Unknown
)

// Embedding kinds.
const (
	KindVisual = embedding.Visual
	KindText   = embedding.Text
)
