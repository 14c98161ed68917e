package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yttranscript/youtube"
)

// KindInvalidRequest labels requests rejected before any retrieval.
const KindInvalidRequest = "invalid_request"

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type transcriptResponse struct {
	Video    string                      `json:"video"`
	Lang     string                      `json:"lang,omitempty"`
	Segments []youtube.TranscriptSegment `json:"segments"`
}

var contentTypes = map[youtube.Format]string{
	youtube.FormatPlainText: "text/plain; charset=utf-8",
	youtube.FormatSRT:       "application/x-subrip; charset=utf-8",
	youtube.FormatVTT:       "text/vtt; charset=utf-8",
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getTranscript handles GET /v1/transcript?video=&lang=&format=
func (s *Server) getTranscript(c *gin.Context) {
	video := c.Query("video")
	if video == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "video query parameter is required", Kind: KindInvalidRequest})
		return
	}
	format := youtube.FormatJSON
	if name := c.Query("format"); name != "" {
		f, err := youtube.ParseFormatName(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: KindInvalidRequest})
			return
		}
		format = f
	}

	cfg := youtube.TranscriptConfig{Lang: c.Query("lang")}
	segments, err := s.fetcher.Fetch(c.Request.Context(), video, cfg)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if format == youtube.FormatJSON {
		c.JSON(http.StatusOK, transcriptResponse{Video: video, Lang: cfg.Lang, Segments: segments})
		return
	}
	body, err := youtube.NewFormatConverter(segments).ToFormat(format)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypes[format], []byte(body))
}

// getTracks handles GET /v1/tracks?video=
func (s *Server) getTracks(c *gin.Context) {
	video := c.Query("video")
	if video == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "video query parameter is required", Kind: KindInvalidRequest})
		return
	}

	info, err := s.fetcher.Inspect(c.Request.Context(), video, youtube.TranscriptConfig{Lang: c.Query("lang")})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) writeError(c *gin.Context, err error) {
	kind := youtube.ErrorKind(err)
	status := StatusForKind(kind)
	_ = c.Error(err)
	c.JSON(status, errorResponse{Error: err.Error(), Kind: kind})
}

// StatusForKind maps a retrieval error kind to an HTTP status.
func StatusForKind(kind string) int {
	switch kind {
	case youtube.KindOK:
		return http.StatusOK
	case youtube.KindIdentifierNotFound:
		return http.StatusBadRequest
	case youtube.KindVideoUnavailable,
		youtube.KindCaptionsDisabled,
		youtube.KindNoTranscriptsAvailable,
		youtube.KindLanguageNotAvailable:
		return http.StatusNotFound
	case youtube.KindTooManyRequests:
		return http.StatusServiceUnavailable
	case youtube.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
