// Package yttranscript fetches YouTube video transcripts by scraping the
// caption manifest embedded in the public watch page. The official Data API
// is never used and no credentials are needed.
//
// Overview
//
// A retrieval runs five steps:
//
//   - resolve a video identifier from a bare id or a YouTube URL
//   - fetch the watch page HTML
//   - extract the caption track list embedded in the page
//   - select a track, by exact language code or the first listed one
//   - fetch that track's timed-text document and parse it into segments
//
// Quick Start
//
//	ctx := context.Background()
//	segments, err := yttranscript.FetchTranscript(ctx, "https://youtu.be/dQw4w9WgXcQ", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range segments {
//		fmt.Printf("%.2f %s\n", s.Offset, s.Text)
//	}
//
// Request a language:
//
//	segments, err := yttranscript.FetchTranscript(ctx, "dQw4w9WgXcQ",
//		&yttranscript.TranscriptConfig{Lang: "fr"})
//
// Segment text is returned exactly as it appears in the payload; HTML
// entities such as &amp;#39; are not decoded.
//
// Error Handling
//
// Every failure maps to one sentinel, checked with errors.Is:
//
//	switch {
//	case errors.Is(err, yttranscript.ErrTooManyRequests):
//		// YouTube served a captcha; back off
//	case errors.Is(err, yttranscript.ErrLanguageNotAvailable):
//		var langErr *yttranscript.LanguageError
//		if errors.As(err, &langErr) {
//			fmt.Println("available:", langErr.Available)
//		}
//	}
//
// No request is ever retried.
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: the pipeline stages, Transcriber and output formats
//   - http: the paced, circuit-broken HTTP client
//
// Each stage of youtube.Transcriber can be replaced on its own:
//
//	tr := youtube.NewTranscriber(httpclient.New(nil))
//	tr.Pages = youtube.PageFetcherFunc(func(ctx context.Context, id string, cfg youtube.TranscriptConfig) (string, error) {
//		return loadCachedPage(id)
//	})
package yttranscript
