package youtube

// TranscriptConfig carries the caller's per-retrieval options.
type TranscriptConfig struct {
	// Lang is an exact caption language code such as "en" or "pt-BR".
	// Empty means no preference.
	Lang string
}

// SelectTrack returns the URL of the track to fetch. With a language
// preference the first track whose code matches exactly is chosen;
// otherwise the first track in manifest order is trusted as the default.
func SelectTrack(videoID string, tracks []CaptionTrack, cfg TranscriptConfig) (string, error) {
	if cfg.Lang == "" {
		if len(tracks) == 0 {
			return "", newTranscriptError(videoID, ErrNoTranscriptsAvailable)
		}
		return tracks[0].BaseURL, nil
	}

	for _, track := range tracks {
		if track.LanguageCode == cfg.Lang {
			return track.BaseURL, nil
		}
	}
	return "", &LanguageError{
		Lang:      cfg.Lang,
		Available: LanguageCodes(tracks),
		VideoID:   videoID,
	}
}

// LanguageCodes lists the language code of every track, in order.
func LanguageCodes(tracks []CaptionTrack) []string {
	codes := make([]string, len(tracks))
	for i, track := range tracks {
		codes[i] = track.LanguageCode
	}
	return codes
}
