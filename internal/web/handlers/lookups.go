package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/samber/lo"
)

type LookupHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewLookupHandler(repo db.Repository, log *slog.Logger) *LookupHandler {
	return &LookupHandler{repo: repo, log: log}
}

type lookupResponse struct {
	Text       string `json:"text"`
	Romanized  string `json:"romanized"`
	Pronounced string `json:"pronounced"`
	Count      int64  `json:"count"`
	FirstSeen  string `json:"first_seen"`
	LastSeen   string `json:"last_seen"`
}

type listResponse struct {
	Data  []lookupResponse `json:"data"`
	Sort  string           `json:"sort"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
}

func toLookupResponse(l db.Lookup, _ int) lookupResponse {
	return lookupResponse{
		Text:       l.Text,
		Romanized:  l.Romanized,
		Pronounced: l.Pronounced,
		Count:      l.Count,
		FirstSeen:  l.FirstSeen.Format(time.RFC3339),
		LastSeen:   l.LastSeen.Format(time.RFC3339),
	}
}

func (h *LookupHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := q.Get("sort")
	if sort == "" {
		sort = "recent"
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	var lookups []db.Lookup
	var err error
	switch sort {
	case "recent":
		lookups, err = h.repo.ListRecentLookups(r.Context(), int32(limit))
	case "top":
		lookups, err = h.repo.ListTopLookups(r.Context(), int32(limit))
	default:
		writeError(w, http.StatusBadRequest, "sort must be recent or top")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing lookups", "sort", sort, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	total, err := h.repo.CountLookups(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting lookups", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data:  lo.Map(lookups, toLookupResponse),
		Sort:  sort,
		Limit: limit,
		Total: total,
	})
}
