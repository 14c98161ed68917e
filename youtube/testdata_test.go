package youtube

import "fmt"

const testVideoID = "OAROO-kM8m8"

// watchPageHTML builds a trimmed-down watch page whose caption tracks point
// at trackBase. YouTube escapes '&' as \u0026 inside the embedded JSON.
func watchPageHTML(trackBase string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><head>
<title>Obsidian - YouTube</title>
<meta property="og:title" content="Obsidian">
</head><body><script>var ytInitialPlayerResponse = {"responseContext":{"serviceTrackingParams":[]},"playabilityStatus":{"status":"OK","playableInEmbed":true},"streamingData":{"expiresInSeconds":"21540"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%[1]s/api/timedtext?v=%[2]s\u0026lang=en","name":{"simpleText":"English (auto-generated)"},"vssId":"a.en","languageCode":"en","kind":"asr","isTranslatable":true},{"baseUrl":"%[1]s/api/timedtext?v=%[2]s\u0026lang=fr","name":{"simpleText":"French"},"vssId":".fr","languageCode":"fr","isTranslatable":true}],"audioTracks":[{"captionTrackIndices":[0,1]}],"defaultAudioTrackIndex":0}},"videoDetails":{"videoId":"%[2]s","title":"Obsidian"}};</script></body></html>`,
		trackBase, testVideoID)
}

const timedTextPayload = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="3.359">[Music]</text>` +
	`<text start="0.359" dur="3">away</text>` +
	`<text start="5.52" dur="3">inside</text>` +
	`<text start="10.03" dur="14.99">[Music]</text>` +
	`<text start="20.6" dur="4.42">give it to me saturated</text>` +
	`<text start="28.32" dur="3.109">[Music]</text>` +
	`<text start="37.3" dur="5.669">[Music]</text>` +
	`<text start="47.25" dur="3.149">[Music]</text>` +
	`<text start="51.62" dur="6.769">I&amp;#39;m ready</text>` +
	`<text start="53.28" dur="5.109">[Music]</text>` +
	`</transcript>`

func expectedSegments(lang string) []TranscriptSegment {
	rows := []struct {
		text             string
		offset, duration float64
	}{
		{"[Music]", 0, 3.359},
		{"away", 0.359, 3},
		{"inside", 5.52, 3},
		{"[Music]", 10.03, 14.99},
		{"give it to me saturated", 20.6, 4.42},
		{"[Music]", 28.32, 3.109},
		{"[Music]", 37.3, 5.669},
		{"[Music]", 47.25, 3.149},
		{"I&amp;#39;m ready", 51.62, 6.769},
		{"[Music]", 53.28, 5.109},
	}
	segments := make([]TranscriptSegment, len(rows))
	for i, r := range rows {
		segments[i] = TranscriptSegment{Text: r.text, Offset: r.offset, Duration: r.duration, Lang: lang}
	}
	return segments
}

// captionsPage wraps a raw "captions" value the way the watch page does.
func captionsPage(captions string) string {
	return `<html><script>{"playabilityStatus":{"status":"OK"},"captions":` + captions +
		`,"videoDetails":{"videoId":"` + testVideoID + `"}}</script></html>`
}

func twoTracks() []CaptionTrack {
	return []CaptionTrack{
		{LanguageCode: "en", BaseURL: "https://example.test/a"},
		{LanguageCode: "fr", BaseURL: "https://example.test/b"},
	}
}
