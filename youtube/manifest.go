package youtube

import (
	"encoding/json"
	"strings"
)

// Markers located in the watch page HTML.
const (
	captionsMarker     = `"captions":`
	videoDetailsMarker = `,"videoDetails`
	captchaMarker      = `class="g-recaptcha"`
	playabilityMarker  = `"playabilityStatus":`
)

// CaptionTrack is one caption stream listed in the watch page manifest.
type CaptionTrack struct {
	LanguageCode string `json:"languageCode"`
	BaseURL      string `json:"baseUrl"`
	// Kind is "asr" for auto-generated tracks and empty otherwise.
	Kind string `json:"kind,omitempty"`
}

// captionsManifest is the narrow shape decoded from the "captions" object.
// Pointers distinguish a missing field from an empty one.
type captionsManifest struct {
	Renderer *struct {
		CaptionTracks *[]CaptionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// ExtractCaptionTracks locates the caption manifest embedded in a watch
// page and returns its tracks in source order. The returned slice is never
// empty when err is nil.
func ExtractCaptionTracks(videoID, html string) ([]CaptionTrack, error) {
	_, rest, found := strings.Cut(html, captionsMarker)
	if !found {
		switch {
		case strings.Contains(html, captchaMarker):
			return nil, newTranscriptError(videoID, ErrTooManyRequests)
		case !strings.Contains(html, playabilityMarker):
			return nil, newTranscriptError(videoID, ErrVideoUnavailable)
		default:
			return nil, newTranscriptError(videoID, ErrCaptionsDisabled)
		}
	}

	fragment, _, _ := strings.Cut(rest, videoDetailsMarker)
	fragment = strings.ReplaceAll(fragment, "\n", "")

	var manifest captionsManifest
	if err := json.Unmarshal([]byte(fragment), &manifest); err != nil || manifest.Renderer == nil {
		return nil, newTranscriptError(videoID, ErrCaptionsDisabled)
	}
	if manifest.Renderer.CaptionTracks == nil || len(*manifest.Renderer.CaptionTracks) == 0 {
		return nil, newTranscriptError(videoID, ErrNoTranscriptsAvailable)
	}
	return *manifest.Renderer.CaptionTracks, nil
}
