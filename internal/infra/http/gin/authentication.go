package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	profileapp "staybook/internal/app/handlers/profile"
	"staybook/internal/infra/security"
)

const principalContextKey = "staybook.principal"

type principal struct {
	ID    string
	Email string
	Name  string
	Role  string
}

func (p principal) HasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	return strings.ToLower(p.Role) == role
}

// AuthMiddleware verifies the bearer token and reconciles the identity with
// its profile record. The principal's role always comes from the profile
// row, not the token: token metadata only seeds the first creation.
type AuthMiddleware struct {
	Verifier security.TokenVerifier
	Profiles profileapp.Ensurer
	Logger   *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Profiles == nil {
		c.Next()
		return
	}
	identity, err := m.Verifier.Verify(token)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	p, err := m.Profiles.Ensure(c.Request.Context(), identity)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("profile reconciliation failed", "subject", identity.Subject, "error", err)
		}
		c.Next()
		return
	}
	setPrincipal(c, principal{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Role:  string(p.Role),
	})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireRole(c *gin.Context, role string) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "auth required"})
		return principal{}, false
	}
	if role != "" && !p.HasRole(role) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient permissions"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
