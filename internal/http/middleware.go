package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/s84/movie-catalog/internal/metrics"
	"github.com/s84/movie-catalog/internal/repo"
	"github.com/s84/movie-catalog/internal/security"
)

const (
	authUserKey  = "authUser"
	requestIDKey = "X-Request-ID"
)

// AuthUser is the identity decoded from a bearer token. It reflects the user
// as of token issuance; nothing here is re-checked against the store.
type AuthUser struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}

// CurrentUser returns the identity placed on the context by AuthRequired.
func CurrentUser(c *gin.Context) (AuthUser, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return AuthUser{}, false
	}
	u, ok := v.(AuthUser)
	return u, ok
}

// RequestID honors an inbound X-Request-ID and mints one otherwise. The id
// is echoed back and stamped on published events.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDKey, id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthRequired validates `Authorization: Bearer <token>`. The three failure
// modes get distinct messages, but token verification failures (bad
// signature, expired, garbage) are indistinguishable to the caller.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			metrics.AuthFailures.WithLabelValues("missing_header").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header."})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || token == "" {
			metrics.AuthFailures.WithLabelValues("bad_scheme").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization format. Use: Bearer <token>"})
			return
		}

		claims, err := security.ParseAccess(secret, token)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token."})
			return
		}

		c.Set(authUserKey, AuthUser{
			ID:      claims.UID,
			Name:    claims.Name,
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})
		c.Next()
	}
}

// AdminOnly runs after AuthRequired and gates on the IsAdmin claim.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !u.IsAdmin {
			metrics.AuthFailures.WithLabelValues("not_admin").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required."})
			return
		}
		c.Next()
	}
}

// RateLimit applies a fixed per-IP window via Redis. With no Redis handle or
// a non-positive limit it is a no-op.
func RateLimit(rds *repo.Redis, perMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rds == nil || perMin <= 0 {
			c.Next()
			return
		}
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()
		if !rds.Allow(c.Request.Context(), key, perMin, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests."})
			return
		}
		c.Next()
	}
}
