package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/service"
	appErrors "github.com/schedulepro/schedule-pro-api/pkg/errors"
	"github.com/schedulepro/schedule-pro-api/pkg/response"
)

// CatalogHandler exposes catalog ingestion and browsing endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Ingest accepts one uploaded CSV schedule file.
func (h *CatalogHandler) Ingest(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "a schedule file upload is required"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file must be a CSV"))
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer src.Close()

	resp, err := h.service.Ingest(file.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resp)
}

// List pages through the catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	var query dto.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid catalog query"))
		return
	}
	response.OK(c, h.service.List(query))
}

// Courses lists distinct courses with their sections.
func (h *CatalogHandler) Courses(c *gin.Context) {
	response.OK(c, h.service.Courses(c.Query("search")))
}
