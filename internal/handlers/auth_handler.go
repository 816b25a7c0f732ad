package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/trailmate/internal/middleware"
	"github.com/joshua-takyi/trailmate/internal/models"
	"github.com/joshua-takyi/trailmate/internal/services"
)

func Signup(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		res, err := u.CreateUser(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{"user": res.User}, "Check your email to confirm your account"))
	}
}

func Login(u *services.UserService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		tokenRes, err := u.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		if err != nil || tokenRes.AccessToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		middleware.SetSessionCookies(c, tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken, secureCookies)

		// Tokens stay in http-only cookies.
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": tokenRes.User}, ""))
	}
}

func Refresh(u *services.UserService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie(middleware.RefreshTokenCookie)
		if err != nil {
			loginRequired(c, "Session expired")
			return
		}

		tokenRes, err := u.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil || tokenRes.AccessToken == "" {
			middleware.ClearSessionCookies(c, secureCookies)
			loginRequired(c, "Session expired")
			return
		}

		middleware.SetSessionCookies(c, tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken, secureCookies)
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": tokenRes.User}, ""))
	}
}

func Logout(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSessionCookies(c, secureCookies)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

// Me returns the current identity: the only user fields the app uses.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			loginRequired(c, "Log in to continue")
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"id":           claims.UserID,
			"email":        claims.Email,
			"display_name": claims.Name(),
		}, ""))
	}
}
