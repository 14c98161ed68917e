package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCaptionTracks(t *testing.T) {
	tracks, err := ExtractCaptionTracks(testVideoID, watchPageHTML("https://www.youtube.com"))
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, CaptionTrack{
		LanguageCode: "en",
		BaseURL:      "https://www.youtube.com/api/timedtext?v=" + testVideoID + "&lang=en",
		Kind:         "asr",
	}, tracks[0])
	assert.Equal(t, "fr", tracks[1].LanguageCode)
	assert.Empty(t, tracks[1].Kind)
}

func TestExtractCaptionTracksFailures(t *testing.T) {
	tests := []struct {
		name string
		html string
		want error
	}{
		{
			name: "captcha page",
			html: `<html><form><div class="g-recaptcha" data-sitekey="x"></div></form></html>`,
			want: ErrTooManyRequests,
		},
		{
			name: "no player response",
			html: `<html><body>This video isn't available anymore</body></html>`,
			want: ErrVideoUnavailable,
		},
		{
			name: "playable without captions",
			html: `<html><script>{"playabilityStatus":{"status":"OK"},"videoDetails":{}}</script></html>`,
			want: ErrCaptionsDisabled,
		},
		{
			name: "malformed manifest",
			html: captionsPage(`{"playerCaptionsTracklistRenderer":{"captionTracks":[`),
			want: ErrCaptionsDisabled,
		},
		{
			name: "renderer missing",
			html: captionsPage(`{"playerLiveChatRenderer":{}}`),
			want: ErrCaptionsDisabled,
		},
		{
			name: "tracks missing",
			html: captionsPage(`{"playerCaptionsTracklistRenderer":{"audioTracks":[]}}`),
			want: ErrNoTranscriptsAvailable,
		},
		{
			name: "tracks empty",
			html: captionsPage(`{"playerCaptionsTracklistRenderer":{"captionTracks":[]}}`),
			want: ErrNoTranscriptsAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks, err := ExtractCaptionTracks(testVideoID, tt.html)
			assert.Nil(t, tracks)
			require.ErrorIs(t, err, tt.want)

			var te *TranscriptError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, testVideoID, te.VideoID)
		})
	}
}

func TestExtractCaptionTracksCaptchaIgnoredWhenCaptionsPresent(t *testing.T) {
	html := `<div class="g-recaptcha"></div>` +
		captionsPage(`{"playerCaptionsTracklistRenderer":{"captionTracks":[{"languageCode":"en","baseUrl":"u"}]}}`)

	tracks, err := ExtractCaptionTracks(testVideoID, html)
	require.NoError(t, err)
	assert.Equal(t, []CaptionTrack{{LanguageCode: "en", BaseURL: "u"}}, tracks)
}

func TestExtractCaptionTracksStripsNewlines(t *testing.T) {
	// A raw newline inside a JSON string is invalid until removed.
	html := captionsPage("{\"playerCaptionsTracklistRenderer\":\n{\"captionTracks\":[{\"languageCode\":\"de\",\"baseUrl\":\"https://x/time\ndtext\"}]}}")

	tracks, err := ExtractCaptionTracks(testVideoID, html)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "https://x/timedtext", tracks[0].BaseURL)
}

func TestExtractCaptionTracksWithoutVideoDetails(t *testing.T) {
	// Without the terminating marker the rest of the page is the fragment.
	html := `"playabilityStatus":{},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"languageCode":"en","baseUrl":"u"}]}}`

	tracks, err := ExtractCaptionTracks(testVideoID, html)
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}
