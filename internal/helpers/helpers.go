package helpers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// DisplayName returns the name the user chose at signup, if any.
func (c *CustomClaims) DisplayName() string {
	if name, ok := c.UserMetadata["display_name"].(string); ok {
		return name
	}
	return ""
}

type TokenValidator interface {
	ValidateToken(tokenStr string) (*CustomClaims, error)
}

// TokenVerifier checks Supabase access tokens. Projects on asymmetric signing
// keys are verified against the JWKS endpoint; legacy projects use the shared
// HS256 secret.
type TokenVerifier struct {
	jwks   *keyfunc.JWKS
	secret []byte
}

func NewTokenVerifier(ctx context.Context, jwksURL, secret string) (*TokenVerifier, error) {
	if secret != "" {
		return &TokenVerifier{secret: []byte(secret)}, nil
	}
	if jwksURL == "" {
		return nil, errors.New("either a JWKS url or a JWT secret is required")
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &TokenVerifier{jwks: jwks}, nil
}

func (v *TokenVerifier) keyfunc(token *jwt.Token) (interface{}, error) {
	if v.secret != nil {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	}
	return v.jwks.Keyfunc(token)
}

func (v *TokenVerifier) ValidateToken(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, v.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

// Close stops the background JWKS refresh.
func (v *TokenVerifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	hasSpecial := regexp.MustCompile(`[@$!%*?&]`).MatchString(password)
	return hasLower && hasUpper && hasNumber && hasSpecial
}

func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// SplitLines turns a one-item-per-line text area into a list. Lines are
// trimmed and blank lines dropped. The result is never nil.
func SplitLines(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// NullIfEmpty maps an empty optional field to nil so it is stored as absent.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
