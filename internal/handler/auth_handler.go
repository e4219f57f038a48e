package handler

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"warehouse/internal/config"
	"warehouse/internal/middleware"
	"warehouse/internal/repository"
	"warehouse/internal/usecase"
	"warehouse/internal/validator"

	"github.com/labstack/echo/v4"
)

const refreshCookieName = "refresh"

// 認証まわりのAPI。access tokenはJSONで、refresh tokenはHttpOnly Cookieで返す。
type AuthHandler struct {
	uc           *usecase.AuthUsecase
	refreshTTL   time.Duration
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		refreshTTL:   14 * 24 * time.Hour,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/api/login", h.login)
	e.POST("/api/auth/refresh", h.refresh)
	//元のフロントはGETで叩くのでGETも受ける
	e.GET("/api/logout", h.logout)

	g := e.Group("/api")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.GET("/check-auth", h.checkAuth)

	admin := e.Group("/api/users")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("/:id/force-logout", h.forceLogout)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Login(c.Request().Context(), req, userAgent)
	if err != nil {
		return h.writeAuthError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain, h.refreshTTL)

	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) checkAuth(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	dto, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	userAgent := c.Request().Header.Get("User-Agent")

	out, err := h.uc.Refresh(c.Request().Context(), cookie.Value, userAgent)
	if err != nil {
		//replay検知などは cookie を消してから返す
		h.clearRefreshCookie(c)
		return h.writeAuthError(c, err)
	}

	h.setRefreshCookie(c, out.RefreshTokenPlain, h.refreshTTL)

	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		//cookieがなくてもログアウトは成立させる
		h.clearRefreshCookie(c)
		return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "logout success"})
	}

	out, err := h.uc.Logout(c.Request().Context(), cookie.Value)
	h.clearRefreshCookie(c)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "logout success"})
		}
		return h.writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) forceLogout(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ForceLogout(c.Request().Context(), targetID)
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// usecase/validatorのsentinelをHTTPへ変換
func (h *AuthHandler) writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, validator.ErrInvalidInput), errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	case errors.Is(err, validator.ErrInvalidRefresh),
		errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, usecase.ErrSecurityIncident):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// refreshtoken をCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
