package yttranscript

import (
	httpclient "yttranscript/http"
	"yttranscript/youtube"
)

// Type aliases for convenient error handling.
type (
	// TranscriptError ties a failure to the video or input it concerns.
	TranscriptError = youtube.TranscriptError
	// LanguageError reports a requested language no track matches.
	LanguageError = youtube.LanguageError
	// RateLimitError describes a throttling response from YouTube.
	RateLimitError = httpclient.RateLimitError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrIdentifierNotFound indicates no video id could be resolved from input.
	ErrIdentifierNotFound = youtube.ErrIdentifierNotFound
	// ErrTooManyRequests indicates YouTube answered with a captcha page.
	ErrTooManyRequests = youtube.ErrTooManyRequests
	// ErrVideoUnavailable indicates the watch page has no player data.
	ErrVideoUnavailable = youtube.ErrVideoUnavailable
	// ErrCaptionsDisabled indicates the video exposes no caption manifest.
	ErrCaptionsDisabled = youtube.ErrCaptionsDisabled
	// ErrNoTranscriptsAvailable indicates the manifest lists no usable track.
	ErrNoTranscriptsAvailable = youtube.ErrNoTranscriptsAvailable
	// ErrLanguageNotAvailable indicates no track matches the requested language.
	ErrLanguageNotAvailable = youtube.ErrLanguageNotAvailable

	// Transport errors
	// ErrRequestFailed indicates a request never produced a response.
	ErrRequestFailed = httpclient.ErrRequestFailed
	// ErrCircuitOpen indicates requests to the host are being short-circuited.
	ErrCircuitOpen = httpclient.ErrCircuitOpen
)

// ErrorKind classifies err into a stable label such as "captions_disabled".
func ErrorKind(err error) string {
	return youtube.ErrorKind(err)
}
