package youtube

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents a supported transcript output format.
type Format string

const (
	// FormatPlainText is one segment per line
	FormatPlainText Format = "txt"
	// FormatJSON is a JSON array of segments
	FormatJSON Format = "json"
	// FormatSRT is the SubRip format
	FormatSRT Format = "srt"
	// FormatVTT is the WebVTT format
	FormatVTT Format = "vtt"
)

// Formats lists every supported format.
var Formats = []Format{FormatPlainText, FormatJSON, FormatSRT, FormatVTT}

// ParseFormatName maps a user-supplied name to a Format.
func ParseFormatName(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format: %q", name)
}

// FormatConverter renders segments in the supported formats. Segment text
// is written as-is in every format.
type FormatConverter struct {
	segments []TranscriptSegment
}

// NewFormatConverter creates a new format converter with the given segments.
func NewFormatConverter(segments []TranscriptSegment) *FormatConverter {
	return &FormatConverter{segments: segments}
}

// ToFormat renders the transcript in the specified format.
func (fc *FormatConverter) ToFormat(format Format) (string, error) {
	switch format {
	case FormatPlainText:
		return fc.toPlainText(), nil
	case FormatJSON:
		return fc.toJSON()
	case FormatSRT:
		return fc.toSRT(), nil
	case FormatVTT:
		return fc.toVTT(), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func (fc *FormatConverter) toPlainText() string {
	var sb strings.Builder
	for _, seg := range fc.segments {
		sb.WriteString(seg.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (fc *FormatConverter) toJSON() (string, error) {
	segments := fc.segments
	if segments == nil {
		segments = []TranscriptSegment{}
	}
	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal segments: %w", err)
	}
	return string(data) + "\n", nil
}

func (fc *FormatConverter) toSRT() string {
	var sb strings.Builder
	for i, seg := range fc.segments {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n",
			i+1,
			formatSRTTime(seg.Offset),
			formatSRTTime(seg.Offset+seg.Duration),
			seg.Text)
	}
	return sb.String()
}

func (fc *FormatConverter) toVTT() string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for _, seg := range fc.segments {
		fmt.Fprintf(&sb, "%s --> %s\n%s\n\n",
			formatVTTTime(seg.Offset),
			formatVTTTime(seg.Offset+seg.Duration),
			seg.Text)
	}
	return sb.String()
}

// formatVTTTime formats seconds as HH:MM:SS.mmm.
func formatVTTTime(seconds float64) string {
	d := time.Duration(seconds*1000+0.5) * time.Millisecond
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// formatSRTTime formats seconds as HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	return strings.Replace(formatVTTTime(seconds), ".", ",", 1)
}
