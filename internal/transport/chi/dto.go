package chi

import (
	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain/asset"
	"github.com/kailas-cloud/assetdex/internal/domain/batch"
	"github.com/kailas-cloud/assetdex/internal/domain/document"
	"github.com/kailas-cloud/assetdex/internal/domain/search"
)

// Error response codes returned to clients.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeAssetNotFound     = "asset_not_found"
	codeVectorDimMismatch = "vector_dim_mismatch"
	codeIndexNotFound     = "index_not_found"
	codeSerialization     = "serialization_error"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// aiUpdateRequest carries asynchronously produced AI results for an asset.
// Caption and transcription distinguish "absent" from "set to empty".
type aiUpdateRequest struct {
	Tags            []string  `json:"tags,omitempty"`
	Caption         *string   `json:"caption,omitempty"`
	Transcription   *string   `json:"transcription,omitempty"`
	VisualEmbedding []float32 `json:"visual_embedding,omitempty"`
	TextEmbedding   []float32 `json:"text_embedding,omitempty"`
}

func (r *aiUpdateRequest) toDomain() *document.AIUpdate {
	return &document.AIUpdate{
		Tags:            r.Tags,
		Caption:         r.Caption,
		Transcription:   r.Transcription,
		VisualEmbedding: r.VisualEmbedding,
		TextEmbedding:   r.TextEmbedding,
	}
}

type visualSearchRequest struct {
	Embedding []float32 `json:"embedding"`
	Limit     int       `json:"limit,omitempty"`
}

type hybridSearchRequest struct {
	Query     string    `json:"query,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

type searchResponse struct {
	Items []search.Result `json:"items"`
	Total int             `json:"total"`
}

func newSearchResponse(results []search.Result) searchResponse {
	if results == nil {
		results = []search.Result{}
	}
	return searchResponse{Items: results, Total: len(results)}
}

type batchIndexRequest struct {
	Assets []asset.Asset `json:"assets"`
}

type batchRemoveRequest struct {
	AssetIDs []uuid.UUID `json:"asset_ids"`
}

type batchItemResult struct {
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type batchResponse struct {
	Results   []batchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

func newBatchResponse(results []batch.Result) batchResponse {
	resp := batchResponse{Results: make([]batchItemResult, 0, len(results))}
	for _, r := range results {
		item := batchItemResult{
			AssetID: r.AssetID().String(),
			Status:  string(r.Status()),
		}
		if err := r.Err(); err != nil {
			item.Error = err.Error()
		}
		if r.Status() == batch.StatusOK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

type indexAssetResponse struct {
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
