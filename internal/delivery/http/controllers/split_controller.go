package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"evalboard/internal/delivery/http/helpers"
	"evalboard/internal/delivery/http/middleware"
	"evalboard/internal/domain"
)

// CreateSplitRequest is the request body for POST /datasets/{datasetID}/splits.
type CreateSplitRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate implements Validator.
func (c CreateSplitRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// RenameSplitRequest is the request body for PATCH /datasets/{datasetID}/splits/{splitID}.
type RenameSplitRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (c RenameSplitRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SelectionRequest carries the example selection for status and toggle calls.
// An empty selection is valid and handled as a no-op by the engine.
type SelectionRequest struct {
	ExampleIDs []string `json:"example_ids"`
}

// SplitStatusesResponse is the data payload for POST /datasets/{datasetID}/splits/statuses.
type SplitStatusesResponse struct {
	Splits []*domain.SplitWithStatus `json:"splits"`
}

// ToggleSplitResponse is the data payload for POST /datasets/{datasetID}/splits/{splitID}/toggle.
type ToggleSplitResponse struct {
	Outcomes []domain.SplitApplyOutcome `json:"outcomes"`
	Status   string                     `json:"status"`
}

type SplitController struct {
	Logger  *slog.Logger
	Service domain.SplitService
}

func NewSplitController(logger *slog.Logger, svc domain.SplitService) *SplitController {
	return &SplitController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSplits godoc
// @Summary List a dataset's splits
// @Description Returns the split catalog for the dataset.
// @Tags splits
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the split catalog"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/splits [get]
func (c *SplitController) ListSplits(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	if datasetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing datasetID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	splits, err := c.Service.ListSplits(r.Context(), datasetID, userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, splits)
}

// CreateSplit godoc
// @Summary Create a split on a dataset
// @Description Resolves a split by name (creating it if missing) and links it to the dataset. Idempotent for an existing name.
// @Tags splits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param split body CreateSplitRequest true "Split name and optional color"
// @Success 201 {object} helpers.APIResponse "data contains the split"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/splits [post]
func (c *SplitController) CreateSplit(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	if datasetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing datasetID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateSplitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	split, err := c.Service.CreateSplit(r.Context(), datasetID, userID, req.Name, req.Color)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, split)
}

// RenameSplit godoc
// @Summary Rename a split
// @Description Renames a split in the dataset's catalog. Split names are unique; a collision yields 400.
// @Tags splits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param splitID path string true "Split ID (UUID)"
// @Param split body RenameSplitRequest true "New split name"
// @Success 200 {object} helpers.APIResponse "data contains the renamed split"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/splits/{splitID} [patch]
func (c *SplitController) RenameSplit(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	splitID := r.PathValue("splitID")
	if datasetID == "" || splitID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing datasetID or splitID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RenameSplitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	split, err := c.Service.RenameSplit(r.Context(), datasetID, splitID, userID, req.Name)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, split)
}

// DeleteSplit godoc
// @Summary Remove a split from a dataset
// @Description Unlinks the split from the dataset and clears its example memberships within that dataset.
// @Tags splits
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param splitID path string true "Split ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/splits/{splitID} [delete]
func (c *SplitController) DeleteSplit(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	splitID := r.PathValue("splitID")
	if datasetID == "" || splitID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing datasetID or splitID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteSplit(r.Context(), datasetID, splitID, userID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SplitStatuses godoc
// @Summary Tri-state split statuses for a selection
// @Description Returns the split catalog with one aggregate status per split (checked, indeterminate, unchecked) for the selected examples. An empty selection yields unchecked for every split.
// @Tags splits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param selection body SelectionRequest true "Selected example IDs"
// @Success 200 {object} helpers.APIResponse "data contains splits with statuses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/splits/statuses [post]
func (c *SplitController) SplitStatuses(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	if datasetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing datasetID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SelectionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	statuses, err := c.Service.SplitStatuses(r.Context(), datasetID, userID, req.ExampleIDs)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SplitStatusesResponse{Splits: statuses})
}

// ToggleSplit godoc
// @Summary Toggle a split across a selection
// @Description Normalizes membership of the split across every selected example: removes it from all when every example has it, otherwise adds it to all. Returns one outcome per example; individual failures do not abort the batch.
// @Tags splits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param splitID path string true "Split ID (UUID)"
// @Param selection body SelectionRequest true "Selected example IDs"
// @Success 200 {object} helpers.APIResponse "data contains per-example outcomes and the resulting status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/splits/{splitID}/toggle [post]
func (c *SplitController) ToggleSplit(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")
	splitID := r.PathValue("splitID")
	if datasetID == "" || splitID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing datasetID or splitID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SelectionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	outcomes, status, err := c.Service.ToggleSplit(r.Context(), datasetID, splitID, userID, req.ExampleIDs)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ToggleSplitResponse{Outcomes: outcomes, Status: status})
}

func (c *SplitController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
