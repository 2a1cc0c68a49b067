package domain

import (
	"context"
	"encoding/json"
)

// ArchiveExample is one example record in an external dataset archive.
type ArchiveExample struct {
	Input  json.RawMessage `json:"input"`
	Output json.RawMessage `json:"output"`
}

// DatasetArchive is the payload returned by an external dataset-archive URL.
type DatasetArchive struct {
	Name     string           `json:"name"`
	Examples []ArchiveExample `json:"examples"`
}

// ArchiveFetcher fetches a dataset archive from an external source.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, url string) (DatasetArchive, error)
}
