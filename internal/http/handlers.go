package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/s84/movie-catalog/internal/domain"
	"github.com/s84/movie-catalog/internal/log"
	"github.com/s84/movie-catalog/internal/queue"
	"github.com/s84/movie-catalog/internal/repo"
	"github.com/s84/movie-catalog/internal/security"
)

const eventsExchange = "catalog.events"

type Handler struct {
	Store           *repo.Store
	JWTSecret       string
	AccessTTL       time.Duration
	Redis           *repo.Redis
	RateLimitPerMin int
	Events          queue.Publisher
}

func NewHandler(store *repo.Store, jwtSecret string, accessTTLDays int, rds *repo.Redis, rlPerMin int, pub queue.Publisher) *Handler {
	if pub == nil {
		pub = queue.NewNoop()
	}
	return &Handler{
		Store:           store,
		JWTSecret:       jwtSecret,
		AccessTTL:       time.Duration(accessTTLDays) * 24 * time.Hour,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
		Events:          pub,
	}
}

// publish fires an event without tying its lifetime to the request; the
// publisher applies its own timeout.
func (h *Handler) publish(c *gin.Context, key string, event any) {
	reqID := c.GetString(requestIDKey)
	go func() {
		if err := h.Events.Publish(context.Background(), eventsExchange, key, event, reqID); err != nil {
			log.L().Warn("event publish failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// Root godoc
// @Summary Service status
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Movie Catalog API is running."})
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Register godoc
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		h.serverError(c, err)
		return
	}

	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email, // normalized by the store
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
	}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		if err == repo.ErrEmailExists {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered."})
			return
		}
		h.serverError(c, err)
		return
	}

	h.publish(c, "user.registered", queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name})

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user":    u.Public(),
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	// Unknown email and wrong password must be indistinguishable.
	u, err := h.Store.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil || u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Name, u.Email, u.IsAdmin, h.AccessTTL)
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.publish(c, "user.loggedin", queue.UserLoggedIn{UserID: u.ID, Email: u.Email})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   tok,
	})
}

// serverError logs the cause and returns the generic 500 body; details never
// reach the caller.
func (h *Handler) serverError(c *gin.Context, err error) {
	log.L().Error("internal error",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
}
