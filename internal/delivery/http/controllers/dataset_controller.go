package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"evalboard/internal/delivery/http/helpers"
	"evalboard/internal/delivery/http/middleware"
	"evalboard/internal/domain"
)

// CreateDatasetRequest is the request body for POST /datasets.
type CreateDatasetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate implements Validator.
func (c CreateDatasetRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// ImportExamplesRequest is the request body for POST /datasets/{datasetID}/import.
type ImportExamplesRequest struct {
	ArchiveURL string `json:"archive_url"`
}

// Validate implements Validator.
func (c ImportExamplesRequest) Validate() []string {
	var errs []string
	if c.ArchiveURL == "" {
		errs = append(errs, "archive_url is required")
	}
	return errs
}

// GetDatasetResponse is the data payload for GET /datasets/{datasetID}.
type GetDatasetResponse struct {
	Dataset      *domain.Dataset `json:"dataset"`
	Splits       []*domain.Split `json:"splits"`
	ExampleCount int             `json:"example_count"`
}

// ListExamplesResponse is the data payload for GET /datasets/{datasetID}/examples.
type ListExamplesResponse struct {
	Examples   []*domain.Example      `json:"examples"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ImportExamplesResponse is the data payload for POST /datasets/{datasetID}/import.
type ImportExamplesResponse struct {
	Imported int `json:"imported"`
}

type DatasetController struct {
	Logger  *slog.Logger
	Service domain.DatasetService
}

func NewDatasetController(logger *slog.Logger, svc domain.DatasetService) *DatasetController {
	return &DatasetController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateDataset godoc
// @Summary Create a new dataset
// @Description Create a dataset owned by the authenticated user. ID and timestamps are server-generated.
// @Tags datasets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dataset body CreateDatasetRequest true "Dataset name and description"
// @Success 201 {object} helpers.APIResponse "data contains the created dataset"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets [post]
func (c *DatasetController) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	dataset := domain.NewDataset(req.Name, req.Description, userID, now, now)
	if err := c.Service.CreateDataset(r.Context(), dataset); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, dataset)
}

// ListDatasets godoc
// @Summary List the caller's datasets
// @Tags datasets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the datasets"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets [get]
func (c *DatasetController) ListDatasets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	datasets, err := c.Service.ListDatasetsByOwner(r.Context(), userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, datasets)
}

// GetDataset godoc
// @Summary Get a dataset by ID
// @Description Returns the dataset, its split catalog, and its example count.
// @Tags datasets
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains dataset, splits, and example count"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID} [get]
func (c *DatasetController) GetDataset(w http.ResponseWriter, r *http.Request) {
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
	dataset, splits, count, err := c.Service.GetDatasetByID(r.Context(), datasetID, userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetDatasetResponse{
		Dataset:      dataset,
		Splits:       splits,
		ExampleCount: count,
	})
}

// ListExamples godoc
// @Summary List a dataset's examples
// @Tags datasets
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains examples and pagination metadata"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/examples [get]
func (c *DatasetController) ListExamples(w http.ResponseWriter, r *http.Request) {
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
	p := helpers.ParsePagination(r)
	examples, total, err := c.Service.ListExamples(r.Context(), datasetID, userID, p)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListExamplesResponse{
		Examples: examples,
		Pagination: helpers.PaginationMeta{
			Page:     p.Page,
			PageSize: p.PageSize,
			Total:    total,
		},
	})
}

// ImportExamples godoc
// @Summary Import examples from an external archive
// @Description Downloads a dataset archive (JSON) from the given URL and creates one example per record.
// @Tags datasets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Param archive body ImportExamplesRequest true "Archive URL"
// @Success 200 {object} helpers.APIResponse "data contains the imported count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID}/import [post]
func (c *DatasetController) ImportExamples(w http.ResponseWriter, r *http.Request) {
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
	var req ImportExamplesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	imported, err := c.Service.ImportExamples(r.Context(), datasetID, userID, req.ArchiveURL)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ImportExamplesResponse{Imported: imported})
}

// DeleteDataset godoc
// @Summary Delete a dataset
// @Description Deletes the dataset along with its examples and split links. Splits shared with other datasets are kept.
// @Tags datasets
// @Produce json
// @Security BearerAuth
// @Param datasetID path string true "Dataset ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/{datasetID} [delete]
func (c *DatasetController) DeleteDataset(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.DeleteDataset(r.Context(), datasetID, userID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *DatasetController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
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
