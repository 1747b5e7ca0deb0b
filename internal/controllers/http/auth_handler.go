package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	if h.secureCookies {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(cookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookies, true)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setAuthCookie(c, token)

	success(c, http.StatusCreated, "User registered successfully")
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setAuthCookie(c, token)

	success(c, http.StatusOK, "Login successful")
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setAuthCookie(c, token)

	success(c, http.StatusOK, "Login successful")
}

func (h *Handler) Logout(c *gin.Context) {
	if h.secureCookies {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(cookieName, "", -1, "/", "", h.secureCookies, true)

	success(c, http.StatusOK, "Logged out successfully")
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
