package youtube

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageTitle returns the video title from watch page HTML, preferring the
// og:title meta tag over the document title. It returns "" when neither is
// present.
func PageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(title, "- YouTube"))
}

// VideoInfo summarizes what a watch page offers before any track is fetched.
type VideoInfo struct {
	VideoID string         `json:"videoId"`
	Title   string         `json:"title,omitempty"`
	Tracks  []CaptionTrack `json:"tracks"`
}
