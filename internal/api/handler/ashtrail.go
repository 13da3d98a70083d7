package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/middleware"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/request"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/ashtrail"
)

// AshTrailHandler handles ghost run submission and replay endpoints
type AshTrailHandler struct {
	ashtrail *ashtrail.Service
}

// NewAshTrailHandler creates a new ash trail handler
func NewAshTrailHandler(ashtrailService *ashtrail.Service) *AshTrailHandler {
	return &AshTrailHandler{
		ashtrail: ashtrailService,
	}
}

// SubmitRun handles POST /api/dbs2/ashtrail/runs. Guests may submit
// without an identity header; their runs are kept under a display name.
func (h *AshTrailHandler) SubmitRun(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	userKey := middleware.GetUserKey(r.Context())
	if userKey == "" && req.GuestName == "" {
		WriteError(w, NewInvalidRequestError("guest_name is required without an identity"))
		return
	}

	run, err := h.ashtrail.Submit(r.Context(), userKey, req.GuestName, model.BookID(req.Book), req.Score, req.Trace)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RunDetailFromModel(run))
}

// ListRuns handles GET /api/dbs2/ashtrail/runs
func (h *AshTrailHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	book := model.BookID(r.URL.Query().Get("book"))
	if !book.Valid() {
		WriteError(w, model.ErrInvalidBook)
		return
	}

	runs, err := h.ashtrail.List(r.Context(), book, parseLimit(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, response.RunSummaryFromModel(run))
	}

	response.JSON(w, http.StatusOK, response.RunListResponse{Book: string(book), Runs: summaries})
}

// GetRun handles GET /api/dbs2/ashtrail/runs/{runId}
func (h *AshTrailHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["runId"]
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid run id"))
		return
	}

	run, err := h.ashtrail.Get(r.Context(), model.RunID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RunDetailFromModel(run))
}
