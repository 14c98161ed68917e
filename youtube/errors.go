package youtube

import (
	"errors"
	"fmt"
	"strings"

	httpclient "yttranscript/http"
)

// Sentinel errors, one per pipeline failure condition.
var (
	ErrIdentifierNotFound     = errors.New("youtube: unable to resolve a video identifier from input")
	ErrTooManyRequests        = errors.New("youtube: too many requests from this IP, a captcha must be solved to continue")
	ErrVideoUnavailable       = errors.New("youtube: the video is no longer available")
	ErrCaptionsDisabled       = errors.New("youtube: transcript is disabled on this video")
	ErrNoTranscriptsAvailable = errors.New("youtube: no transcripts are available for this video")
	ErrLanguageNotAvailable   = errors.New("youtube: no transcripts are available in the requested language")
)

// TranscriptError ties a sentinel to the video (or raw input) it concerns.
type TranscriptError struct {
	VideoID string
	Err     error
}

func (e *TranscriptError) Error() string {
	if e.VideoID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (%s)", e.Err, e.VideoID)
}

func (e *TranscriptError) Unwrap() error {
	return e.Err
}

func newTranscriptError(videoID string, err error) *TranscriptError {
	return &TranscriptError{VideoID: videoID, Err: err}
}

// LanguageError reports a language preference that matches no caption track.
type LanguageError struct {
	Lang      string
	Available []string
	VideoID   string
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("youtube: no transcripts are available in %s for this video (%s), available languages: %s",
		e.Lang, e.VideoID, strings.Join(e.Available, ", "))
}

func (e *LanguageError) Unwrap() error {
	return ErrLanguageNotAvailable
}

// Error kind labels returned by ErrorKind.
const (
	KindOK                     = "ok"
	KindIdentifierNotFound     = "identifier_not_found"
	KindTooManyRequests        = "too_many_requests"
	KindVideoUnavailable       = "video_unavailable"
	KindCaptionsDisabled       = "captions_disabled"
	KindNoTranscriptsAvailable = "no_transcripts_available"
	KindLanguageNotAvailable   = "language_not_available"
	KindTransport              = "transport"
	KindUnknown                = "unknown"
)

// ErrorKind classifies err into a stable label suitable for metrics and
// API responses. A nil error is KindOK.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrIdentifierNotFound):
		return KindIdentifierNotFound
	case errors.Is(err, ErrTooManyRequests):
		return KindTooManyRequests
	case errors.Is(err, ErrVideoUnavailable):
		return KindVideoUnavailable
	case errors.Is(err, ErrCaptionsDisabled):
		return KindCaptionsDisabled
	case errors.Is(err, ErrNoTranscriptsAvailable):
		return KindNoTranscriptsAvailable
	case errors.Is(err, ErrLanguageNotAvailable):
		return KindLanguageNotAvailable
	case errors.Is(err, httpclient.ErrRequestFailed),
		errors.Is(err, httpclient.ErrCircuitOpen),
		errors.Is(err, httpclient.ErrBodyTooLarge):
		return KindTransport
	default:
		return KindUnknown
	}
}
