package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/services"
	"swasthsetu/pkg/utils"
)

const maxDocumentSize = 10 << 20

type HealthRecordController struct {
	recordService services.HealthRecordServiceInterface
}

func NewHealthRecordController(recordService services.HealthRecordServiceInterface) *HealthRecordController {
	return &HealthRecordController{recordService: recordService}
}

// ListRecords godoc
// @Summary List health records
// @Description Returns the caller's records, newest first
// @Tags Health Records
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/health/records [get]
func (h *HealthRecordController) ListRecords(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, records, "")
}

// CreateRecord godoc
// @Summary Add a health record
// @Tags Health Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateHealthRecordRequest true "Record payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/health/records [post]
func (h *HealthRecordController) CreateRecord(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, record, "Record created")
}

// UploadDocument godoc
// @Summary Upload a health document
// @Description Stores the file and creates a document record
// @Tags Health Records
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param date formData string false "Document date (YYYY-MM-DD)"
// @Success 201 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /api/health/records/upload [post]
func (h *HealthRecordController) UploadDocument(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "file is required")
		return
	}
	if file.Size > maxDocumentSize {
		utils.RespondError(c, http.StatusRequestEntityTooLarge, "file exceeds 10MB")
		return
	}

	var date time.Time
	if raw := strings.TrimSpace(c.PostForm("date")); raw != "" {
		date, err = parseFormDate(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD or RFC3339")
			return
		}
	}

	body, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "could not read file")
		return
	}
	defer body.Close()

	record, err := h.recordService.UploadDocument(c.Request.Context(), userID, services.DocumentUpload{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Body:        body,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Date:        date,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, record, "Document uploaded")
}

// DocumentLink godoc
// @Summary Get a download link for a document record
// @Tags Health Records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/health/records/{id}/document [get]
func (h *HealthRecordController) DocumentLink(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	recordID, ok := pathID(c, "id")
	if !ok {
		return
	}

	link, err := h.recordService.DocumentLink(c.Request.Context(), userID, recordID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, link, "")
}

func parseFormDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
