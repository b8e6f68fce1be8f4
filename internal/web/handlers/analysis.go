package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jusunglee/hangulfun/internal/analysis"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/metrics"
	"github.com/jusunglee/hangulfun/internal/transliteration"
)

type AnalysisHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewAnalysisHandler(repo db.Repository, log *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{repo: repo, log: log}
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	text, msg := validText(r.URL.Query().Get("text"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	word := analysis.Analyze(text)
	metrics.AnalysesTotal.WithLabelValues("web").Inc()

	if transliteration.DetectScript(text) == transliteration.Korean {
		_, err := h.repo.RecordLookup(r.Context(), db.RecordLookupParams{
			Text:       text,
			Romanized:  word.Romanized,
			Pronounced: word.Pronounced,
		})
		if err != nil {
			h.log.WarnContext(r.Context(), "recording lookup", "text", text, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, word)
}

type romanizeResponse struct {
	Text      string `json:"text"`
	Script    string `json:"script"`
	Romanized string `json:"romanized"`
	Literal   string `json:"literal,omitempty"`
}

func (h *AnalysisHandler) Romanize(w http.ResponseWriter, r *http.Request) {
	text, msg := validText(r.URL.Query().Get("text"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resp := romanizeResponse{
		Text:      text,
		Script:    string(transliteration.DetectScript(text)),
		Romanized: transliteration.Transliterate(text),
	}
	if literal := transliteration.TransliterateLiteral(text); literal != resp.Romanized {
		resp.Literal = literal
	}
	metrics.AnalysesTotal.WithLabelValues("web").Inc()
	writeJSON(w, http.StatusOK, resp)
}
