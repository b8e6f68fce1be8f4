package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jusunglee/hangulfun/internal/translation"
)

// maxTextRunes bounds the text accepted by every endpoint.
const maxTextRunes = 500

// Translator is the part of translation.Translator the handler needs.
type Translator interface {
	Translate(ctx context.Context, text string) (translation.Translation, error)
}

type TranslationHandler struct {
	translator Translator
	log        *slog.Logger
}

// NewTranslationHandler returns a handler that answers 503 when translator
// is nil.
func NewTranslationHandler(translator Translator, log *slog.Logger) *TranslationHandler {
	return &TranslationHandler{translator: translator, log: log}
}

type createTranslationRequest struct {
	Text string `json:"text"`
}

type translationResponse struct {
	Text        string `json:"text"`
	Translated  string `json:"translated"`
	Explanation string `json:"explanation,omitempty"`
	Cached      bool   `json:"cached"`
}

func (h *TranslationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.translator == nil {
		writeError(w, http.StatusServiceUnavailable, "translation is not configured")
		return
	}

	var req createTranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	text, msg := validText(req.Text)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tr, err := h.translator.Translate(r.Context(), text)
	if err != nil {
		if errors.Is(err, translation.ErrMissingTranslation) {
			writeError(w, http.StatusBadGateway, "translation provider returned no translation")
			return
		}
		h.log.ErrorContext(r.Context(), "translating", "text", text, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.InfoContext(r.Context(), "translated", "text", text, "cached", tr.Cached)
	writeJSON(w, http.StatusOK, translationResponse{
		Text:        tr.Original,
		Translated:  tr.Translated,
		Explanation: tr.Explanation,
		Cached:      tr.Cached,
	})
}

// validText trims text and returns a client-facing message when it is
// unusable.
func validText(text string) (string, string) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return "", "text is required"
	case utf8.RuneCountInString(text) > maxTextRunes:
		return "", "text is too long"
	}
	return text, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
