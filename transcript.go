package yttranscript

import (
	"context"

	"yttranscript/youtube"
)

type (
	// TranscriptConfig carries per-retrieval options.
	TranscriptConfig = youtube.TranscriptConfig
	// TranscriptSegment is one timed line of a transcript.
	TranscriptSegment = youtube.TranscriptSegment
)

// FetchTranscript resolves input, a video id or YouTube URL, and returns its
// transcript. A nil cfg selects the first listed caption track.
func FetchTranscript(ctx context.Context, input string, cfg *TranscriptConfig) ([]TranscriptSegment, error) {
	var c TranscriptConfig
	if cfg != nil {
		c = *cfg
	}
	return youtube.FetchTranscript(ctx, input, c)
}
