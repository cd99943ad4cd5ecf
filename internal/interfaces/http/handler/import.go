package handler

import (
	"net/http"

	specapp "github.com/apitest/backend/internal/application/spec"
	"github.com/apitest/backend/internal/infrastructure/importer"
	"github.com/apitest/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// maxImportFileSize caps uploaded spec documents at 10MB
const maxImportFileSize = 10 << 20

// ImportHandler handles spec document uploads
type ImportHandler struct {
	BaseHandler
	importService *specapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *specapp.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportExcel imports interface definitions from an Excel workbook.
// The file is uploaded as multipart form field "file" and imported
// into the project named by the :id path parameter.
func (h *ImportHandler) ImportExcel(c *gin.Context) {
	h.runImport(c, importer.ParseExcel)
}

// ImportPostman imports interface definitions from a Postman collection export
func (h *ImportHandler) ImportPostman(c *gin.Context) {
	h.runImport(c, importer.ParseCollection)
}

func (h *ImportHandler) runImport(c *gin.Context, parse importer.ParseFunc) {
	projectID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeValidation, "file exceeds maximum size of 10MB")
		return
	}

	parsed, err := parse(file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	report, err := h.importService.Import(c.Request.Context(), projectID, parsed, getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
