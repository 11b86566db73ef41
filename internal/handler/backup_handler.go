package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/service"
	"alkhaled/pkg/response"
)

// maxImportSize caps an uploaded backup at 32 MiB.
const maxImportSize = 32 << 20

type BackupHandler struct {
	backupService service.BackupService
}

func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	backup := router.Group("/api/backup")
	{
		backup.GET("", h.Export)
		backup.POST("/import", h.Import)
	}
}

// Export downloads the full dataset as a dated JSON backup
// @Summary      Export backup
// @Description  Streams the whole dataset as a pretty printed JSON attachment
// @Tags         backup
// @Produce      json
// @Success      200  {file}  file
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *gin.Context) {
	filename, data, err := h.backupService.Export()
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// Import replaces the whole dataset from an uploaded backup
// @Summary      Import backup
// @Description  Validates the backup's required keys and replaces the dataset atomically. A rejected file leaves the data untouched
// @Tags         backup
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		badRequest(c, "Could not read request body: "+err.Error())
		return
	}
	if err := h.backupService.Import(data); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Backup imported"))
}
