package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/pkg/export"
)

// ExportHandler streams organization datasets as CSV or Excel.
type ExportHandler struct {
	facade ExportFacade
}

func NewExportHandler(facade ExportFacade) *ExportHandler {
	return &ExportHandler{facade: facade}
}

// Export handles GET /api/v1/exports/:dataset?format=csv|xlsx.
func (h *ExportHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, domainErrors.Validation("format", "must be csv or xlsx"))
		return
	}

	dataset := c.Param("dataset")
	var buf bytes.Buffer
	if err := h.facade.Export(c.Request.Context(), &buf, dataset, format); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dataset+"."+format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
