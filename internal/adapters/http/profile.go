package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/store"
)

var validate = validator.New()

type ProfileHandlers struct {
	DB *store.Postgres
}

// UpdateRequest carries one profile mutation. FieldName must belong to
// the store's whitelisted field set; arbitrary attributes are rejected.
type UpdateRequest struct {
	UserID    string `json:"userId" validate:"required"`
	FieldName string `json:"fieldName" validate:"required"`
	NewValue  string `json:"newValue" validate:"required"`
}

type DeleteRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *ProfileHandlers) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	err := h.DB.UpdateProfileField(c.Request.Context(), req.UserID, req.FieldName, req.NewValue)
	switch {
	case errors.Is(err, store.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		log.Error().Err(err).Str("module", "adapters.http").Msg("profile update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		log.Info().Str("module", "adapters.http").Str("user", req.UserID).Str("field", req.FieldName).Msg("profile updated")
		sessions.Default(c).Set("user", req.UserID)
		_ = sessions.Default(c).Save()
		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}

func (h *ProfileHandlers) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}

	err := h.DB.DeleteProfile(c.Request.Context(), req.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		log.Error().Err(err).Str("module", "adapters.http").Msg("profile delete")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		log.Info().Str("module", "adapters.http").Str("user", req.UserID).Msg("profile deleted")
		c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
	}
}
