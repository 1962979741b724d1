package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/snonux/poplingo/internal"
	"codeberg.org/snonux/poplingo/internal/audio"
	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
	"codeberg.org/snonux/poplingo/internal/processor"
)

type lookupRequest struct {
	Term string `json:"term"`
}

type speechRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type speechResponse struct {
	Audio      string `json:"audio"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
	Encoding   string `json:"encoding"`
}

type storyResponse struct {
	Story    string   `json:"story"`
	Words    []string `json:"words"`
	Fallback bool     `json:"fallback"`
}

type languageInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": internal.Version})
}

func (s *Server) listLanguages(c *gin.Context) {
	all := language.All()
	out := make([]languageInfo, len(all))
	for i, l := range all {
		out[i] = languageInfo{Name: string(l), Code: l.Code()}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.proc.Settings())
}

func (s *Server) putSettings(c *gin.Context) {
	var req processor.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.proc.SetSettings(req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, s.proc.Settings())
}

func (s *Server) lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.proc.Lookup(c.Request.Context(), req.Term)
	var lerr *processor.LookupError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, entry)
	case errors.Is(err, processor.ErrEmptyQuery):
		errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, processor.ErrStale):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "entry": entry})
	case errors.As(err, &lerr):
		errorJSON(c, http.StatusBadGateway, lerr.Message())
	default:
		s.logger.Error("lookup failed", slog.Any("error", err))
		errorJSON(c, http.StatusInternalServerError, processor.LookupFailedMessage)
	}
}

func (s *Server) currentLookup(c *gin.Context) {
	entry, ok := s.proc.Current()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":   entry,
		"saved":   s.proc.IsSaved(entry.ID),
		"loading": s.proc.Loading(),
	})
}

func (s *Server) listNotebook(c *gin.Context) {
	c.JSON(http.StatusOK, s.proc.Store().Entries())
}

func (s *Server) bindEntry(c *gin.Context) (notebook.WordEntry, bool) {
	var entry notebook.WordEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return entry, false
	}
	if strings.TrimSpace(entry.ID) == "" || strings.TrimSpace(entry.Term) == "" {
		errorJSON(c, http.StatusBadRequest, "entry needs an id and a term")
		return entry, false
	}
	return entry, true
}

func (s *Server) addEntry(c *gin.Context) {
	entry, ok := s.bindEntry(c)
	if !ok {
		return
	}
	if err := s.proc.Save(entry); err != nil {
		s.persistenceFailed(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) toggleEntry(c *gin.Context) {
	entry, ok := s.bindEntry(c)
	if !ok {
		return
	}
	saved, err := s.proc.ToggleSave(entry)
	if err != nil {
		s.persistenceFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (s *Server) getEntry(c *gin.Context) {
	entry, ok := s.proc.Store().Get(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, notebook.ErrNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.proc.Remove(c.Param("id")); err != nil {
		s.persistenceFailed(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// persistenceFailed reports a notebook write error. The in-memory notebook
// already reflects the change.
func (s *Server) persistenceFailed(c *gin.Context, err error) {
	s.logger.Error("failed to persist notebook", slog.Any("error", err))
	errorJSON(c, http.StatusInternalServerError, err.Error())
}

func (s *Server) story(c *gin.Context) {
	story, err := s.proc.Story(c.Request.Context())
	if errors.Is(err, processor.ErrEmptyNotebook) {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}

	words := make([]string, len(story.Entries))
	for i, e := range story.Entries {
		words[i] = e.Term
	}
	c.JSON(http.StatusOK, storyResponse{Story: story.Text, Words: words, Fallback: story.Fallback})
}

func (s *Server) speech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	lang := s.proc.Settings().Target
	if req.Lang != "" {
		parsed, err := language.Parse(req.Lang)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		lang = parsed
	}

	pcm, err := s.proc.Speech(c.Request.Context(), req.Text, lang)
	var serr *content.ServiceError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, speechResponse{
			Audio:      pcm,
			SampleRate: audio.SampleRate,
			Channels:   audio.Channels,
			Encoding:   "s16le",
		})
	case errors.As(err, &serr):
		s.logger.Error("speech synthesis failed", slog.Any("error", err))
		errorJSON(c, http.StatusBadGateway, audio.PlaybackFailedMessage)
	default:
		errorJSON(c, http.StatusBadRequest, err.Error())
	}
}
