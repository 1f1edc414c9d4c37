package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/planboard/capacity-backend-go/internal/domain/assignment"
	"github.com/planboard/capacity-backend-go/internal/handler/http/response"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

type AssignmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	BulkUpsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	store     *feed.Store
	refresher *feed.Refresher
	feedRepo  assignment.FeedRepository
}

func NewAssignmentHandler(store *feed.Store, refresher *feed.Refresher, feedRepo assignment.FeedRepository) AssignmentHandler {
	return &assignmentHandlerImpl{
		store:     store,
		refresher: refresher,
		feedRepo:  feedRepo,
	}
}

// List returns the normalized assignment records of the current
// snapshot, optionally filtered by engineer_id.
func (h *assignmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	engineerID := r.URL.Query().Get("engineer_id")

	records := make([]assignment.RecordResponse, 0, len(snap.Records))
	for _, rec := range snap.Records {
		if engineerID != "" && rec.Key.EngineerID != engineerID {
			continue
		}
		records = append(records, assignment.ToRecordResponse(rec))
	}

	response.Success(w, map[string]interface{}{
		"version": snap.Version,
		"records": records,
	})
}

// Upsert persists a planner edit and applies it to the in-memory
// snapshot immediately, so the grid reflects the edit before the
// debounced full refresh lands.
func (h *assignmentHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req assignment.UpsertAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	week, err := calendar.ParseWeekLabel(req.WeekLabel)
	if err != nil {
		response.HandleError(w, assignment.ErrInvalidWeekLabel)
		return
	}

	row := assignment.RawRow{
		EngineerID:  &req.EngineerID,
		WeekLabel:   week.Label(),
		Year:        week.Year,
		ProjectCode: req.ProjectCode,
		Hours:       req.Hours,
		Tentative:   req.Tentative,
		UpdatedAt:   time.Now().UTC(),
	}

	saved, err := h.feedRepo.Upsert(r.Context(), row)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	kind := assignment.ParseKind(req.ProjectCode)
	rec := assignment.Record{
		Key:       assignment.Key{EngineerID: req.EngineerID, Week: week},
		Kind:      kind,
		Hours:     req.Hours,
		Tentative: req.Tentative,
		UpdatedAt: saved.UpdatedAt,
	}
	if kind == assignment.KindProject {
		rec.ProjectCode = req.ProjectCode
	}
	h.store.ApplyOptimisticEdit(rec)
	h.refresher.Trigger()

	response.Success(w, assignment.ToAssignmentResponse(saved))
}

// BulkUpsert persists a multi-cell planner edit in one transaction,
// then applies every cell to the snapshot and schedules a single
// refresh for the whole batch.
func (h *assignmentHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req assignment.BulkUpsertAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now().UTC()
	rows := make([]assignment.RawRow, 0, len(req.Assignments))
	weeks := make([]calendar.WeekKey, 0, len(req.Assignments))
	for _, edit := range req.Assignments {
		week, err := calendar.ParseWeekLabel(edit.WeekLabel)
		if err != nil {
			response.HandleError(w, assignment.ErrInvalidWeekLabel)
			return
		}
		weeks = append(weeks, week)

		engineerID := edit.EngineerID
		rows = append(rows, assignment.RawRow{
			EngineerID:  &engineerID,
			WeekLabel:   week.Label(),
			Year:        week.Year,
			ProjectCode: edit.ProjectCode,
			Hours:       edit.Hours,
			Tentative:   edit.Tentative,
			UpdatedAt:   now,
		})
	}

	saved, err := h.feedRepo.UpsertMany(r.Context(), rows)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	for i, edit := range req.Assignments {
		kind := assignment.ParseKind(edit.ProjectCode)
		rec := assignment.Record{
			Key:       assignment.Key{EngineerID: edit.EngineerID, Week: weeks[i]},
			Kind:      kind,
			Hours:     edit.Hours,
			Tentative: edit.Tentative,
			UpdatedAt: saved[i].UpdatedAt,
		}
		if kind == assignment.KindProject {
			rec.ProjectCode = edit.ProjectCode
		}
		h.store.ApplyOptimisticEdit(rec)
	}
	h.refresher.Trigger()

	responses := make([]assignment.AssignmentResponse, 0, len(saved))
	for _, row := range saved {
		responses = append(responses, assignment.ToAssignmentResponse(row))
	}
	response.Success(w, map[string]interface{}{
		"assignments": responses,
	})
}

func (h *assignmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Missing assignment id", nil)
		return
	}

	if err := h.feedRepo.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	h.refresher.Trigger()

	response.SuccessWithMessage(w, "Assignment deleted", nil)
}
