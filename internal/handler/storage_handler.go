package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
	"alkhaled/pkg/response"
)

// StorageStatus is the session storage state reported to the UI.
type StorageStatus struct {
	Status  store.Status `json:"status"`
	Backend string       `json:"backend,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// DirectoryRequest asks for file storage rooted at a directory.
type DirectoryRequest struct {
	Directory string `json:"directory" binding:"required"`
}

// StorageHandler drives backend selection. Its routes stay reachable while
// the rest of the API is gated on readiness.
type StorageHandler struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewStorageHandler(ctrl *store.Controller, hub *ws.Hub) *StorageHandler {
	return &StorageHandler{ctrl: ctrl, hub: hub}
}

func (h *StorageHandler) RegisterRoutes(router *gin.RouterGroup) {
	storage := router.Group("/api/storage")
	{
		storage.GET("/status", h.GetStatus)
		storage.POST("/directory", h.UseDirectory)
		storage.POST("/embedded", h.UseEmbedded)
	}
}

func (h *StorageHandler) status() StorageStatus {
	st := StorageStatus{
		Status:  h.ctrl.Status(),
		Backend: h.ctrl.BackendName(),
	}
	if err := h.ctrl.LoadError(); err != nil {
		st.Error = err.Error()
	}
	return st
}

// GetStatus reports the storage lifecycle state
// @Summary      Storage status
// @Tags         storage
// @Produce      json
// @Success      200  {object}  response.Response{data=handler.StorageStatus}
// @Router       /api/storage/status [get]
func (h *StorageHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.status()))
}

// UseDirectory grants directory access and switches to file storage
// @Summary      Use directory storage
// @Description  Verifies write access to the directory, remembers it for the next session and reloads the dataset from it
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        payload  body      handler.DirectoryRequest  true  "Directory payload"
// @Success      200      {object}  response.Response{data=handler.StorageStatus}
// @Failure      403      {object}  response.Response
// @Router       /api/storage/directory [post]
func (h *StorageHandler) UseDirectory(c *gin.Context) {
	var req DirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.ctrl.RequestDirectoryAccess(req.Directory); err != nil {
		h.hub.Emit(ws.EventStorageStatus, h.status())
		fail(c, err)
		return
	}
	st := h.status()
	h.hub.Emit(ws.EventStorageStatus, st)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, st))
}

// UseEmbedded opts into the embedded key-value store
// @Summary      Use embedded storage
// @Tags         storage
// @Produce      json
// @Success      200  {object}  response.Response{data=handler.StorageStatus}
// @Router       /api/storage/embedded [post]
func (h *StorageHandler) UseEmbedded(c *gin.Context) {
	if err := h.ctrl.UseEmbeddedStorage(); err != nil {
		h.hub.Emit(ws.EventStorageStatus, h.status())
		fail(c, err)
		return
	}
	st := h.status()
	h.hub.Emit(ws.EventStorageStatus, st)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, st))
}
