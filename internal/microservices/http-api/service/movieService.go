package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"moviehub/internal/microservices/http-api/events"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	// ErrMovieNotFound is returned by every by-id operation when the movie does not exist.
	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidMovie  = errors.New("title and year are required")
)

const publishTimeout = 2 * time.Second

type MovieService interface {
	GetAll(ctx context.Context) ([]models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	repo      repository.MovieRepository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewMovieService(r repository.MovieRepository, p events.Publisher, logger *slog.Logger) MovieService {
	if p == nil {
		p = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &movieService{repo: r, publisher: p, logger: logger}
}

func (s *movieService) GetAll(ctx context.Context) ([]models.Movie, error) {
	return s.repo.GetAll(ctx)
}

func (s *movieService) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (s *movieService) Create(ctx context.Context, m *models.Movie) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" || m.Year == 0 {
		return ErrInvalidMovie
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return err
	}

	s.publish(ctx, events.MovieCreated, m)
	return nil
}

// Delete checks the movie exists before removing it.
func (s *movieService) Delete(ctx context.Context, id int64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	s.publish(ctx, events.MovieDeleted, m)
	return nil
}

// publish is best-effort: a failed event never fails the request
func (s *movieService) publish(ctx context.Context, eventType string, m *models.Movie) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	e := events.Event{
		Type:       eventType,
		MovieID:    m.ID,
		Title:      m.Title,
		Year:       m.Year,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(pctx, e); err != nil {
		s.logger.Warn("movie_event_publish_failed", "type", eventType, "movie_id", m.ID, "error", err)
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMovieNotFound
	}
	return err
}
