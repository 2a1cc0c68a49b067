package datasetarchive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"evalboard/internal/domain"
)

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher that downloads a dataset archive from a URL.
func NewHTTPFetcher(client *http.Client) domain.ArchiveFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (domain.DatasetArchive, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.DatasetArchive{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.DatasetArchive{}, fmt.Errorf("failed to fetch archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.DatasetArchive{}, fmt.Errorf("archive source returned status: %d", resp.StatusCode)
	}

	var archive domain.DatasetArchive
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return domain.DatasetArchive{}, fmt.Errorf("failed to decode archive: %w", err)
	}
	return archive, nil
}
