package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	jwtmw "account_backend/internal/platform/jwt"
)

type mockProfileUsecase struct {
	GetMyProfileFunc  func(ctx context.Context, id string) (*entity.Account, error)
	UpdateProfileFunc func(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error)
}

func (m *mockProfileUsecase) GetMyProfile(ctx context.Context, id string) (*entity.Account, error) {
	if m.GetMyProfileFunc != nil {
		return m.GetMyProfileFunc(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

func (m *mockProfileUsecase) UpdateProfile(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, fields)
	}
	return nil, domain.ErrAccountNotFound
}

// newProfileRouter mounts the handler behind a stub that plays the auth middleware's part.
func newProfileRouter(h *ProfileHandler, accountID string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if accountID != "" {
			c.Set(jwtmw.ContextAccountID, accountID)
		}
		c.Next()
	})
	router.GET("/profile/me", h.GetMe)
	router.PATCH("/profile/me", h.UpdateMe)
	return router
}

func TestProfileHandler_GetMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		uc := &mockProfileUsecase{
			GetMyProfileFunc: func(ctx context.Context, id string) (*entity.Account, error) {
				return &entity.Account{ID: id, Email: "a@x.com", Username: "a", ProviderType: entity.ProviderClassic}, nil
			},
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/profile/me", nil)
		newProfileRouter(NewProfileHandler(uc), "id-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "id-1", body["id"])
		assert.Equal(t, "a@x.com", body["email"])
	})

	t.Run("no authenticated account", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/profile/me", nil)
		newProfileRouter(NewProfileHandler(&mockProfileUsecase{}), "").ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("account deleted after token issue", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/profile/me", nil)
		newProfileRouter(NewProfileHandler(&mockProfileUsecase{}), "gone").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		uc := &mockProfileUsecase{
			GetMyProfileFunc: func(ctx context.Context, id string) (*entity.Account, error) {
				return nil, errors.New("database error")
			},
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/profile/me", nil)
		newProfileRouter(NewProfileHandler(uc), "id-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database error")
	})
}

func TestProfileHandler_UpdateMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("partial update", func(t *testing.T) {
		uc := &mockProfileUsecase{
			UpdateProfileFunc: func(ctx context.Context, id string, fields entity.AccountUpdate) (*entity.Account, error) {
				assert.Nil(t, fields.Username)
				require.NotNil(t, fields.Avatar)
				return &entity.Account{ID: id, Username: "a", Avatar: *fields.Avatar}, nil
			},
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPatch, "/profile/me", bytes.NewBufferString(`{"avatar":"https://example.com/a.png"}`))
		req.Header.Set("Content-Type", "application/json")
		newProfileRouter(NewProfileHandler(uc), "id-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "https://example.com/a.png", body["avatar"])
	})

	t.Run("empty username rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPatch, "/profile/me", bytes.NewBufferString(`{"username":""}`))
		req.Header.Set("Content-Type", "application/json")
		newProfileRouter(NewProfileHandler(&mockProfileUsecase{}), "id-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
