package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTrack(t *testing.T) {
	tracks := twoTracks()

	got, err := SelectTrack(testVideoID, tracks, TranscriptConfig{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/a", got, "no preference takes the first track")

	got, err = SelectTrack(testVideoID, tracks, TranscriptConfig{Lang: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/b", got)
}

func TestSelectTrackFirstMatchWins(t *testing.T) {
	tracks := []CaptionTrack{
		{LanguageCode: "en", BaseURL: "asr"},
		{LanguageCode: "en", BaseURL: "manual"},
	}

	got, err := SelectTrack(testVideoID, tracks, TranscriptConfig{Lang: "en"})
	require.NoError(t, err)
	assert.Equal(t, "asr", got)
}

func TestSelectTrackLanguageNotAvailable(t *testing.T) {
	for _, lang := range []string{"de", "EN", "en-US"} {
		t.Run(lang, func(t *testing.T) {
			_, err := SelectTrack(testVideoID, twoTracks(), TranscriptConfig{Lang: lang})
			require.ErrorIs(t, err, ErrLanguageNotAvailable)

			var le *LanguageError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, lang, le.Lang)
			assert.Equal(t, []string{"en", "fr"}, le.Available)
			assert.Equal(t, testVideoID, le.VideoID)
			assert.Contains(t, err.Error(), "available languages: en, fr")
		})
	}
}

func TestSelectTrackEmpty(t *testing.T) {
	_, err := SelectTrack(testVideoID, nil, TranscriptConfig{})
	assert.ErrorIs(t, err, ErrNoTranscriptsAvailable)

	_, err = SelectTrack(testVideoID, nil, TranscriptConfig{Lang: "en"})
	assert.ErrorIs(t, err, ErrLanguageNotAvailable)
}

func TestLanguageCodes(t *testing.T) {
	assert.Equal(t, []string{"en", "fr"}, LanguageCodes(twoTracks()))
	assert.Empty(t, LanguageCodes(nil))
}
