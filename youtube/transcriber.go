// Package youtube retrieves YouTube transcripts by scraping the watch page
// for its embedded caption manifest, fetching a caption track and parsing
// the timed-text payload. No official data API is used.
//
// The retrieval is a fixed pipeline of single-method stages:
//
//	IdentifierResolver -> PageFetcher -> ManifestExtractor ->
//	TrackSelector -> PayloadFetcher -> TimedTextParser
//
// Every stage is a field on Transcriber and may be replaced independently.
package youtube

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httpclient "yttranscript/http"
)

// IdentifierResolver normalizes user input into a video identifier.
type IdentifierResolver interface {
	ResolveVideoID(input string) (string, error)
}

// PageFetcher retrieves the watch page HTML for a video.
type PageFetcher interface {
	FetchPage(ctx context.Context, videoID string, cfg TranscriptConfig) (string, error)
}

// ManifestExtractor pulls the caption tracks out of a watch page.
type ManifestExtractor interface {
	ExtractCaptionTracks(videoID, html string) ([]CaptionTrack, error)
}

// TrackSelector picks the URL of the track to fetch.
type TrackSelector interface {
	SelectTrack(videoID string, tracks []CaptionTrack, cfg TranscriptConfig) (string, error)
}

// PayloadFetcher retrieves a caption track's timed-text document.
type PayloadFetcher interface {
	FetchPayload(ctx context.Context, videoID, trackURL string, cfg TranscriptConfig) (string, error)
}

// TimedTextParser turns a timed-text document into segments.
type TimedTextParser interface {
	ParseTimedText(payload string, tracks []CaptionTrack, cfg TranscriptConfig) ([]TranscriptSegment, error)
}

// ResolverFunc adapts a function to IdentifierResolver.
type ResolverFunc func(input string) (string, error)

func (f ResolverFunc) ResolveVideoID(input string) (string, error) { return f(input) }

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, videoID string, cfg TranscriptConfig) (string, error)

func (f PageFetcherFunc) FetchPage(ctx context.Context, videoID string, cfg TranscriptConfig) (string, error) {
	return f(ctx, videoID, cfg)
}

// ExtractorFunc adapts a function to ManifestExtractor.
type ExtractorFunc func(videoID, html string) ([]CaptionTrack, error)

func (f ExtractorFunc) ExtractCaptionTracks(videoID, html string) ([]CaptionTrack, error) {
	return f(videoID, html)
}

// SelectorFunc adapts a function to TrackSelector.
type SelectorFunc func(videoID string, tracks []CaptionTrack, cfg TranscriptConfig) (string, error)

func (f SelectorFunc) SelectTrack(videoID string, tracks []CaptionTrack, cfg TranscriptConfig) (string, error) {
	return f(videoID, tracks, cfg)
}

// PayloadFetcherFunc adapts a function to PayloadFetcher.
type PayloadFetcherFunc func(ctx context.Context, videoID, trackURL string, cfg TranscriptConfig) (string, error)

func (f PayloadFetcherFunc) FetchPayload(ctx context.Context, videoID, trackURL string, cfg TranscriptConfig) (string, error) {
	return f(ctx, videoID, trackURL, cfg)
}

// ParserFunc adapts a function to TimedTextParser.
type ParserFunc func(payload string, tracks []CaptionTrack, cfg TranscriptConfig) ([]TranscriptSegment, error)

func (f ParserFunc) ParseTimedText(payload string, tracks []CaptionTrack, cfg TranscriptConfig) ([]TranscriptSegment, error) {
	return f(payload, tracks, cfg)
}

// Observer is notified once per retrieval with its outcome kind (see
// ErrorKind), elapsed time and segment count.
type Observer interface {
	ObserveRetrieval(kind string, elapsed time.Duration, segments int)
}

// Transcriber drives the retrieval pipeline. It keeps no per-retrieval
// state, so one Transcriber may serve concurrent calls as long as its
// stages are safe for concurrent use (the defaults are).
type Transcriber struct {
	Resolver IdentifierResolver
	Pages    PageFetcher
	Manifest ManifestExtractor
	Selector TrackSelector
	Payloads PayloadFetcher
	Parser   TimedTextParser

	Logger   zerolog.Logger
	Observer Observer
}

// NewTranscriber returns a Transcriber wired with the default stages on
// top of client. A nil client gets httpclient defaults.
func NewTranscriber(client *httpclient.Client) *Transcriber {
	fetcher := NewHTTPFetcher(client)
	return &Transcriber{
		Resolver: ResolverFunc(ResolveVideoID),
		Pages:    fetcher,
		Manifest: ExtractorFunc(ExtractCaptionTracks),
		Selector: SelectorFunc(SelectTrack),
		Payloads: fetcher,
		Parser:   ParserFunc(ParseTimedText),
		Logger:   zerolog.Nop(),
	}
}

// FetchTranscript resolves input and retrieves its transcript using a
// default Transcriber.
func FetchTranscript(ctx context.Context, input string, cfg TranscriptConfig) ([]TranscriptSegment, error) {
	return NewTranscriber(nil).Fetch(ctx, input, cfg)
}

// Fetch resolves input (an identifier or URL) and retrieves its transcript.
func (t *Transcriber) Fetch(ctx context.Context, input string, cfg TranscriptConfig) ([]TranscriptSegment, error) {
	start := time.Now()
	log := t.Logger.With().Str("retrieval_id", uuid.NewString()).Logger()

	videoID, err := t.Resolver.ResolveVideoID(input)
	if err != nil {
		t.finish(log, start, nil, err)
		return nil, err
	}
	log = log.With().Str("video_id", videoID).Logger()
	log.Debug().Str("input", input).Msg("video id resolved")

	segments, err := t.run(ctx, log, videoID, cfg)
	t.finish(log, start, segments, err)
	return segments, err
}

// FetchByID retrieves the transcript of an already-resolved video id.
func (t *Transcriber) FetchByID(ctx context.Context, videoID string, cfg TranscriptConfig) ([]TranscriptSegment, error) {
	start := time.Now()
	log := t.Logger.With().
		Str("retrieval_id", uuid.NewString()).
		Str("video_id", videoID).
		Logger()

	segments, err := t.run(ctx, log, videoID, cfg)
	t.finish(log, start, segments, err)
	return segments, err
}

// Inspect resolves input and reports the video title and caption tracks
// without fetching any of them.
func (t *Transcriber) Inspect(ctx context.Context, input string, cfg TranscriptConfig) (*VideoInfo, error) {
	videoID, err := t.Resolver.ResolveVideoID(input)
	if err != nil {
		return nil, err
	}
	html, err := t.Pages.FetchPage(ctx, videoID, cfg)
	if err != nil {
		return nil, err
	}
	tracks, err := t.Manifest.ExtractCaptionTracks(videoID, html)
	if err != nil {
		return nil, err
	}
	return &VideoInfo{VideoID: videoID, Title: PageTitle(html), Tracks: tracks}, nil
}

func (t *Transcriber) run(ctx context.Context, log zerolog.Logger, videoID string, cfg TranscriptConfig) ([]TranscriptSegment, error) {
	html, err := t.Pages.FetchPage(ctx, videoID, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("bytes", len(html)).Msg("watch page fetched")

	tracks, err := t.Manifest.ExtractCaptionTracks(videoID, html)
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("languages", LanguageCodes(tracks)).Msg("caption tracks extracted")

	trackURL, err := t.Selector.SelectTrack(videoID, tracks, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("lang", cfg.Lang).Msg("caption track selected")

	payload, err := t.Payloads.FetchPayload(ctx, videoID, trackURL, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("bytes", len(payload)).Msg("timed text fetched")

	return t.Parser.ParseTimedText(payload, tracks, cfg)
}

func (t *Transcriber) finish(log zerolog.Logger, start time.Time, segments []TranscriptSegment, err error) {
	elapsed := time.Since(start)
	kind := ErrorKind(err)
	if t.Observer != nil {
		t.Observer.ObserveRetrieval(kind, elapsed, len(segments))
	}
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Dur("elapsed", elapsed).Msg("transcript retrieval failed")
		return
	}
	log.Info().Int("segments", len(segments)).Dur("elapsed", elapsed).Msg("transcript retrieved")
}
