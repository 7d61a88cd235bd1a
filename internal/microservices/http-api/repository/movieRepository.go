package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	GetAll(ctx context.Context) ([]models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// GetAll returns every movie in insertion order.
func (r *MovieRepo) GetAll(ctx context.Context) ([]models.Movie, error) {
	list := make([]models.Movie, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return list, nil
}

// GetByID returns gorm.ErrRecordNotFound (wrapped) when no row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &m, nil
}

func (r *MovieRepo) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	// GORM will populate m.ID and m.CreatedAt
	return nil
}

// Delete removes the row and reports gorm.ErrRecordNotFound when nothing was deleted,
// so a delete that lost a race to another one is still seen as not found.
func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Movie{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete movie %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete movie %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}
