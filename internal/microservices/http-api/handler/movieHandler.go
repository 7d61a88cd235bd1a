package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

type MovieHandler struct {
	svc    service.MovieService
	logger *slog.Logger
}

func NewMovieHandler(svc service.MovieService, logger *slog.Logger) *MovieHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieHandler{svc: svc, logger: logger}
}

func (h *MovieHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Home)

	rg := r.Group("/movies")
	rg.GET("", h.List)
	rg.GET("/json", h.ListJSON)
	rg.GET("/add", h.AddForm)
	rg.POST("/add", h.Add)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/delete", h.Delete)
	rg.POST("/:id/delete", h.Delete)
}

// Home is a plain-text liveness page
func (h *MovieHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "home page!")
}

func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "movies.html", gin.H{
		"title":  "Movies",
		"movies": list,
	})
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.notFound(c)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	m, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "detail.html", gin.H{
		"title": m.Title,
		"movie": m,
	})
}

func (h *MovieHandler) AddForm(c *gin.Context) {
	h.renderAddForm(c)
}

// Add creates a movie when both title and year are present; otherwise the
// empty form is shown again without saying which field was missing.
func (h *MovieHandler) Add(c *gin.Context) {
	var in dto.MovieForm
	if err := c.ShouldBind(&in); err != nil {
		h.renderAddForm(c)
		return
	}

	model := in.ToModel()
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Create(ctx, &model); err != nil {
		if errors.Is(err, service.ErrInvalidMovie) {
			h.renderAddForm(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.logger.Info("movie_created", "movie_id", model.ID, "request_id", middleware.GetRequestID(c))
	c.Redirect(http.StatusFound, "/movies")
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.notFound(c)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.logger.Info("movie_deleted", "movie_id", id, "request_id", middleware.GetRequestID(c))
	c.Redirect(http.StatusFound, "/movies")
}

func (h *MovieHandler) ListJSON(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		_ = c.Error(err)
		h.logger.Error("list_movies_failed", "error", err, "request_id", middleware.GetRequestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelsToListResponse(list))
}

func (h *MovieHandler) renderAddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", gin.H{"title": "Add a movie"})
}

func (h *MovieHandler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"title":   "Not found",
		"message": "Movie does not exist",
	})
}

func (h *MovieHandler) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.logger.Error("request_failed", "path", c.Request.URL.Path, "error", err, "request_id", middleware.GetRequestID(c))
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"title": "Server error"})
}

// parseID accepts only positive integer ids
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
