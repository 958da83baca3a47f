package middleware

import (
	"net/http"
	"strings"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessRole
)

// Rule grants access to requests matching Method (empty for any) and Pattern.
// A pattern ending in "/**" matches the prefix itself and everything below it.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
	Role    models.Role
}

func (r Rule) matches(method, p string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	return p == r.Pattern
}

// DefaultRules is the route policy of the API, evaluated top to bottom.
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodOptions, Pattern: "/**", Access: AccessPublic},
		{Pattern: "/auth/**", Access: AccessPublic},
		{Pattern: "/health", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/profiles/**", Access: AccessPublic},
		{Pattern: "/profiles/**", Access: AccessRole, Role: models.RoleAdmin},
		{Pattern: "/**", Access: AccessAuthenticated},
	}
}

// Authorize applies the first matching rule. Requests that match no rule need
// an authenticated caller. permitAll disables every check.
func Authorize(rules []Rule, permitAll bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if permitAll {
			c.Next()
			return
		}

		// Rules see the same path the router dispatches on.
		p := c.Request.URL.Path
		if hasDotSegment(p) {
			AbortWithError(c, http.StatusBadRequest, "Invalid request path")
			return
		}

		rule := Rule{Access: AccessAuthenticated}
		for _, r := range rules {
			if r.matches(c.Request.Method, p) {
				rule = r
				break
			}
		}

		if rule.Access == AccessPublic {
			c.Next()
			return
		}

		user, ok := Principal(c)
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		if rule.Access == AccessRole && !user.HasRole(rule.Role) {
			AbortWithError(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}
