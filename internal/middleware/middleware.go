package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/trailmate/internal/helpers"
	"github.com/joshua-takyi/trailmate/internal/services"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	RefreshTokenMaxAge = 3600 * 24 * 30
	UserKey            = "user"
	LoginPath          = "/auth"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors attached with c.Error and answers with a generic
// 500 when the handler has not written a response yet.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID, _ := c.Get("request_id")

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

type Authenticator struct {
	validator     helpers.TokenValidator
	userService   *services.UserService
	logger        *slog.Logger
	secureCookies bool
}

func NewAuthenticator(validator helpers.TokenValidator, userService *services.UserService, logger *slog.Logger, secureCookies bool) *Authenticator {
	return &Authenticator{
		validator:     validator,
		userService:   userService,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

var errNoToken = errors.New("JWT token not found in cookie or Authorization header")

func bearerToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// SetSessionCookies stores the token pair in http-only cookies.
func SetSessionCookies(c *gin.Context, accessToken string, expiresIn int, refreshToken string, secure bool) {
	c.SetCookie(AccessTokenCookie, accessToken, expiresIn, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, RefreshTokenMaxAge, "/", "", secure, true)
}

func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}

// authenticate resolves the caller from the access token, refreshing the
// session once when the access token is rejected.
func (a *Authenticator) authenticate(c *gin.Context) (*helpers.EnhancedClaims, error) {
	token := bearerToken(c)
	if token == "" {
		return nil, errNoToken
	}

	claims, err := a.validator.ValidateToken(token)
	if err != nil {
		refreshToken, refreshErr := c.Cookie(RefreshTokenCookie)
		if refreshErr != nil || a.userService == nil {
			return nil, err
		}

		tokenRes, refreshErr := a.userService.RefreshToken(c.Request.Context(), refreshToken)
		if refreshErr != nil || tokenRes == nil || tokenRes.AccessToken == "" {
			a.logger.Error("Token refresh failed", "error", refreshErr)
			return nil, errors.New("token expired and refresh failed")
		}

		a.logger.Info("Token refreshed successfully",
			"user_id", tokenRes.User.ID,
			"expires_in", tokenRes.ExpiresIn,
		)
		SetSessionCookies(c, tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken, a.secureCookies)

		token = tokenRes.AccessToken
		claims, err = a.validator.ValidateToken(token)
		if err != nil {
			return nil, errors.New("refreshed token validation failed")
		}
	}

	displayName := claims.DisplayName()
	if displayName == "" && a.userService != nil {
		profile, err := a.userService.GetProfile(c.Request.Context(), claims.Subject, token)
		if err != nil {
			a.logger.Debug("Profile not found, using email as name", "user_id", claims.Subject, "error", err)
		} else {
			displayName = profile.DisplayName
		}
	}

	return &helpers.EnhancedClaims{
		CustomClaims: claims,
		UserID:       claims.Subject,
		Email:        claims.Email,
		DisplayName:  displayName,
		AccessToken:  token,
	}, nil
}

// RequireAuth rejects anonymous callers with a login call-to-action.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "Log in to continue",
				"error":     err.Error(),
				"login_url": LoginPath,
			})
			return
		}
		c.Set(UserKey, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid session exists and lets
// anonymous requests through otherwise.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := a.authenticate(c); err == nil {
			c.Set(UserKey, claims)
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*helpers.EnhancedClaims)
	return claims, ok
}
