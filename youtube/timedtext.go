package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var timedTextRegex = regexp.MustCompile(`<text start="([^"]*)" dur="([^"]*)">([^<]*)</text>`)

// TranscriptSegment is one timed line of a transcript.
type TranscriptSegment struct {
	// Text is copied verbatim from the payload; entities are not decoded.
	Text     string  `json:"text"`
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration"`
	Lang     string  `json:"lang,omitempty"`
}

// ParseTimedText extracts segments from a timed-text payload in payload
// order. Each segment is tagged with cfg.Lang, or with the language of the
// first manifest track when no preference was given; that default only
// names the fetched track because SelectTrack also defaults to the first.
// A start or dur attribute that does not parse as a float fails the whole
// payload: the parser error is returned and no segments are kept.
func ParseTimedText(payload string, tracks []CaptionTrack, cfg TranscriptConfig) ([]TranscriptSegment, error) {
	lang := cfg.Lang
	if lang == "" && len(tracks) > 0 {
		lang = tracks[0].LanguageCode
	}

	matches := timedTextRegex.FindAllStringSubmatch(payload, -1)
	segments := make([]TranscriptSegment, 0, len(matches))
	for _, m := range matches {
		offset, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse timed text start: %w", err)
		}
		duration, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse timed text dur: %w", err)
		}
		segments = append(segments, TranscriptSegment{
			Text:     m[3],
			Offset:   offset,
			Duration: duration,
			Lang:     lang,
		})
	}
	return segments, nil
}
