package youtube

import (
	"context"
	"fmt"
	"net/url"

	httpclient "yttranscript/http"
)

// UserAgent is the browser identity sent with every request. The watch page
// only embeds the caption manifest for desktop browsers.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/85.0.4183.83 Safari/537.36,gzip(gfe)"

// DefaultWatchURL is the watch page endpoint.
const DefaultWatchURL = "https://www.youtube.com/watch"

// HTTPFetcher retrieves watch pages and timed-text payloads over HTTP.
// It implements both PageFetcher and PayloadFetcher.
type HTTPFetcher struct {
	Client *httpclient.Client
	// WatchURL overrides DefaultWatchURL.
	WatchURL string
}

// NewHTTPFetcher creates a fetcher on top of client. A nil client gets
// httpclient defaults.
func NewHTTPFetcher(client *httpclient.Client) *HTTPFetcher {
	if client == nil {
		client = httpclient.New(nil)
	}
	return &HTTPFetcher{Client: client, WatchURL: DefaultWatchURL}
}

func (f *HTTPFetcher) headers(cfg TranscriptConfig) map[string]string {
	h := map[string]string{"User-Agent": UserAgent}
	if cfg.Lang != "" {
		h["Accept-Language"] = cfg.Lang
	}
	return h
}

// FetchPage returns the watch page HTML for videoID. The body is returned
// whatever the status code: a bot-challenge page arrives with 429 and is
// classified later from its content.
func (f *HTTPFetcher) FetchPage(ctx context.Context, videoID string, cfg TranscriptConfig) (string, error) {
	watchURL := f.WatchURL
	if watchURL == "" {
		watchURL = DefaultWatchURL
	}
	pageURL := watchURL + "?v=" + url.QueryEscape(videoID)

	resp, err := f.Client.Get(ctx, pageURL, f.headers(cfg))
	if err != nil {
		return "", fmt.Errorf("fetch watch page: %w", err)
	}
	return string(resp.Body), nil
}

// FetchPayload returns the timed-text document at trackURL. Any non-2xx
// status means the listed track cannot be read.
func (f *HTTPFetcher) FetchPayload(ctx context.Context, videoID, trackURL string, cfg TranscriptConfig) (string, error) {
	resp, err := f.Client.Get(ctx, trackURL, f.headers(cfg))
	if err != nil {
		return "", fmt.Errorf("fetch timed text: %w", err)
	}
	if !resp.OK() {
		return "", newTranscriptError(videoID, ErrNoTranscriptsAvailable)
	}
	return string(resp.Body), nil
}
