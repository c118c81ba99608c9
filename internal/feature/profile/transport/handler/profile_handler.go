// Package handler provides HTTP handlers for the profile feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	accountdto "account_backend/internal/feature/account/transport/http/dto"
	"account_backend/internal/feature/profile/transport/http/dto"
	jwtmw "account_backend/internal/platform/jwt"
)

// ProfileUsecase defines the profile operations the handler depends on.
type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, id string) (*entity.Account, error)
	UpdateProfile(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error)
}

// ProfileHandler serves the authenticated account's profile.
// It must be mounted behind jwtmw.AuthRequired.
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetMe handles GET /profile/me.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	id := c.GetString(jwtmw.ContextAccountID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, accountdto.ErrorRes{Error: "unauthorized"})
		return
	}

	account, err := h.profiles.GetMyProfile(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accountdto.NewAccountRes(account))
}

// UpdateMe handles PATCH /profile/me.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	id := c.GetString(jwtmw.ContextAccountID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, accountdto.ErrorRes{Error: "unauthorized"})
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "account_id", id)
		c.JSON(http.StatusBadRequest, accountdto.ErrorRes{Error: err.Error()})
		return
	}

	account, err := h.profiles.UpdateProfile(c.Request.Context(), id, entity.AccountUpdate{
		Username: req.Username,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("profile updated", "account_id", id)
	c.JSON(http.StatusOK, accountdto.NewAccountRes(account))
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrAccountNotFound) {
		// the token outlived its account
		c.JSON(http.StatusNotFound, accountdto.ErrorRes{Error: err.Error()})
		return
	}
	slog.Error("profile request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, accountdto.ErrorRes{Error: "internal server error"})
}
