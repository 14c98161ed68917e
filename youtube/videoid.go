package youtube

import (
	"regexp"
	"unicode/utf8"
)

// VideoIDLength is the fixed length of a YouTube video identifier.
const VideoIDLength = 11

// videoIDRegex recognizes watch URLs (?v= / &v=), legacy /v/, /e/ and
// /embed/ paths, channel-style nested paths and youtu.be short links. The
// capture is fixed-width, so a longer token yields its first 11 characters.
var videoIDRegex = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ResolveVideoID normalizes a bare identifier or a YouTube URL into an
// 11-character video identifier. Input that is already 11 characters
// (runes, not bytes) long is returned unchanged without further validation.
func ResolveVideoID(input string) (string, error) {
	if utf8.RuneCountInString(input) == VideoIDLength {
		return input, nil
	}
	if m := videoIDRegex.FindStringSubmatch(input); len(m) == 2 {
		return m[1], nil
	}
	return "", newTranscriptError(input, ErrIdentifierNotFound)
}
