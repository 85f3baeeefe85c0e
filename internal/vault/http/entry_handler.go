// Package http provides HTTP handlers for vault entries. Values travel as plaintext
// JSON strings and are sealed by the vault before they reach storage.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cachevault/internal/httputil"
	customValidation "github.com/allisson/cachevault/internal/validation"
	"github.com/allisson/cachevault/internal/vault/http/dto"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
	vaultUseCase "github.com/allisson/cachevault/internal/vault/usecase"
)

// EntryHandler handles HTTP requests for vault entries.
type EntryHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(vaultUseCase vaultUseCase.VaultUseCase, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		vaultUseCase: vaultUseCase,
		logger:       logger,
	}
}

// RegisterRoutes mounts the entry routes on group.
func (h *EntryHandler) RegisterRoutes(group *gin.RouterGroup) {
	entries := group.Group("/entries")
	entries.PUT("/:namespace/:key", h.SaveHandler)
	entries.GET("/:namespace/:key", h.GetHandler)
	entries.DELETE("/:namespace/:key", h.DeleteHandler)
}

// entryPath extracts and validates the path identifiers. It writes the 422 response
// itself and returns false when they are invalid.
func (h *EntryHandler) entryPath(c *gin.Context) (dto.EntryPath, bool) {
	path := dto.EntryPath{
		Namespace: c.Param("namespace"),
		KeyName:   c.Param("key"),
	}
	if err := path.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return path, false
	}
	return path, true
}

// SaveHandler encrypts and stores an entry and its attributes.
// PUT /v1/entries/:namespace/:key
// Returns 200 OK with the entry id. Overwriting an existing entry keeps its id.
func (h *EntryHandler) SaveHandler(c *gin.Context) {
	path, ok := h.entryPath(c)
	if !ok {
		return
	}

	var req dto.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input, err := req.ToSaveInput(path.Namespace, path.KeyName)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	id, err := h.vaultUseCase.Save(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SaveEntryResponse{
		ID:        id,
		Namespace: path.Namespace,
		Key:       path.KeyName,
	})
}

// GetHandler decrypts an entry.
// GET /v1/entries/:namespace/:key?attributes=true
// Returns 200 OK with the plaintext value, and the attributes when requested.
func (h *EntryHandler) GetHandler(c *gin.Context) {
	path, ok := h.entryPath(c)
	if !ok {
		return
	}

	withAttributes, err := dto.ParseBool(c.Query("attributes"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var secret *vaultDomain.Secret
	if withAttributes {
		secret, err = h.vaultUseCase.FetchWithAttributes(c.Request.Context(), path.Namespace, path.KeyName)
	} else {
		secret, err = h.vaultUseCase.Fetch(c.Request.Context(), path.Namespace, path.KeyName)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToEntryResponse(path.Namespace, path.KeyName, secret))
}

// DeleteHandler removes an entry together with its attributes.
// DELETE /v1/entries/:namespace/:key
// Returns 204 No Content.
func (h *EntryHandler) DeleteHandler(c *gin.Context) {
	path, ok := h.entryPath(c)
	if !ok {
		return
	}

	if err := h.vaultUseCase.Delete(c.Request.Context(), path.Namespace, path.KeyName); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
