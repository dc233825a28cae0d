package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dsmolkov/ecommerce_backend/internal/hash"
	"github.com/dsmolkov/ecommerce_backend/internal/models"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

func newAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db, JWTSecret: testJWTSecret, RefreshSecret: testRefreshSecret}
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := newAuthHandler(db)

	payload := map[string]string{"username": "test_user", "password": "password"}

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "test_user", user.Username)
	require.Equal(t, models.RoleUser, user.Role)
	require.NotEmpty(t, user.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotEqual(t, "password", stored.PasswordHash)

	// Same username again is a conflict.
	_, c = doJSONRequest(t, e, http.MethodPost, "/api/v1/register", payload)
	requireHTTPError(t, h.Register(c), http.StatusConflict)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := newAuthHandler(db)

	passwordHash, err := hash.HashPassword("password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username:     "test_user",
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}).Error)

	payload := map[string]string{"username": "test_user", "password": "password"}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/login", payload)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		IsAdmin      bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.False(t, resp.IsAdmin)

	bad := map[string]string{"username": "test_user", "password": "wrong"}
	_, c = doJSONRequest(t, e, http.MethodPost, "/api/v1/login", bad)
	requireHTTPError(t, h.Login(c), http.StatusUnauthorized)
}

func TestLogOut(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := newAuthHandler(db)

	payload := map[string]string{"username": "test_user", "password": "password"}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/register", payload)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	recLogin, cLogin := doJSONRequest(t, e, http.MethodPost, "/api/v1/login", payload)
	require.NoError(t, h.Login(cLogin))

	var resp struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(recLogin.Body.Bytes(), &resp))

	recOut, cOut := doJSONRequest(t, e, http.MethodPost, "/api/v1/logout", nil)
	cOut.Request().AddCookie(&http.Cookie{Name: "refreshToken", Value: resp.RefreshToken})
	require.NoError(t, h.LogOut(cOut))
	require.Equal(t, http.StatusOK, recOut.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(recOut.Body.Bytes(), &out))
	require.Equal(t, "logged out", out["message"])

	var stored models.RefreshToken
	require.NoError(t, db.Where("token = ?", resp.RefreshToken).First(&stored).Error)
	require.True(t, stored.Revoked)
}
