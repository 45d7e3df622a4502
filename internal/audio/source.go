package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Fetcher returns the raw bytes stored at source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// SourceFetcher reads http(s) URLs, file:// URLs and local paths.
type SourceFetcher struct {
	Client *http.Client
}

func (f SourceFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return f.fetchHTTP(ctx, source)
		case "file":
			source = u.Path
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(source)
}

func (f SourceFetcher) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
