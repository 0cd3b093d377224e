package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/s84/movie-catalog/internal/domain"
	"github.com/s84/movie-catalog/internal/queue"
	"github.com/s84/movie-catalog/internal/repo"
)

// ListMovies godoc
// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /movies [get]
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.Store.ListMovies(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// GetMovie godoc
// @Summary Get movie by id
// @Tags movies
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [get]
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id."})
		return
	}
	m, err := h.Store.FindMovieByID(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movie": m})
}

type addCommentReq struct {
	Text string `json:"text"`
}

// AddComment godoc
// @Summary Add comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "movie id"
// @Param payload body addCommentReq true "text"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id."})
		return
	}

	var in addCommentReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required."})
		return
	}

	user, _ := CurrentUser(c)
	uid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token."})
		return
	}

	comments, err := h.Store.AddComment(c.Request.Context(), id, domain.Comment{
		UserID: uid,
		Email:  user.Email,
		Name:   user.Name,
		Text:   in.Text,
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	if comments == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
		return
	}

	h.publish(c, "comment.added", queue.CommentAdded{
		MovieID:   id,
		CommentID: comments[len(comments)-1].ID,
		UserID:    uid,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Comment added successfully.",
		"comments": comments,
	})
}

// ListComments godoc
// @Summary List comments
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id."})
		return
	}
	m, err := h.Store.FindMovieByID(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": m.Comments})
}

// DeleteComment godoc
// @Summary Delete comment (owner or admin)
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "movie id"
// @Param commentId path string true "comment id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id."})
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id."})
		return
	}

	m, err := h.Store.FindMovieByID(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
		return
	}

	var target *domain.Comment
	for i := range m.Comments {
		if m.Comments[i].ID == commentID {
			target = &m.Comments[i]
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found."})
		return
	}

	user, _ := CurrentUser(c)
	if !user.IsAdmin && target.UserID.Hex() != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed."})
		return
	}

	comments, err := h.Store.RemoveComment(c.Request.Context(), id, commentID)
	if err != nil {
		if err == repo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Comment deleted successfully.",
		"comments": comments,
	})
}

type createMovieReq struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	Year        *int   `json:"year"` // pointer: 0 is a valid year, absence is not
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

// CreateMovie godoc
// @Summary Create movie (admin)
// @Tags movies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createMovieReq true "movie"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /movies [post]
func (h *Handler) CreateMovie(c *gin.Context) {
	var in createMovieReq
	if err := c.ShouldBindJSON(&in); err != nil ||
		in.Title == "" || in.Director == "" || in.Year == nil || in.Description == "" || in.Genre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, director, year, description, and genre are required."})
		return
	}

	m := &domain.Movie{
		Title:       in.Title,
		Director:    in.Director,
		Year:        *in.Year,
		Description: in.Description,
		Genre:       in.Genre,
	}
	if err := h.Store.CreateMovie(c.Request.Context(), m); err != nil {
		h.serverError(c, err)
		return
	}

	h.publish(c, "movie.created", queue.MovieCreated{MovieID: m.ID, Title: m.Title, Year: m.Year})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Movie created successfully.",
		"movie":   m,
	})
}

type updateMovieReq struct {
	Title       *string `json:"title"`
	Director    *string `json:"director"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
}

// UpdateMovie godoc
// @Summary Update movie (admin)
// @Tags movies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "movie id"
// @Param payload body updateMovieReq true "fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [put]
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id."})
		return
	}

	var in updateMovieReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	// Only whitelisted fields are copied; a field explicitly present is
	// applied even when zero-valued.
	fields := bson.M{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Director != nil {
		fields["director"] = *in.Director
	}
	if in.Year != nil {
		fields["year"] = *in.Year
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Genre != nil {
		fields["genre"] = *in.Genre
	}

	m, err := h.Store.UpdateMovie(c.Request.Context(), id, fields)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Movie updated successfully.",
		"movie":   m,
	})
}

// DeleteMovie godoc
// @Summary Delete movie (admin)
// @Tags movies
// @Security BearerAuth
// @Produce json
// @Param id path string true "movie id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [delete]
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id."})
		return
	}
	deleted, err := h.Store.DeleteMovie(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully."})
}
