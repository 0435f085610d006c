package document

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/assetdex/internal/domain"
	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
)

// Documents are persisted as JSON, all fields included. The in-memory text
// and vector indexes are rebuilt from these entries at startup, so this is
// the only durable representation.

func encodeDocument(doc *domdoc.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document %s: %w: %w",
			doc.ID, domain.ErrSerialization, err)
	}
	return data, nil
}

func decodeDocument(raw []byte) (*domdoc.Document, error) {
	var doc domdoc.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w: %w",
			domain.ErrSerialization, err)
	}
	return &doc, nil
}
