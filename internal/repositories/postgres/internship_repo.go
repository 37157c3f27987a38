package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/utils"
	"gorm.io/gorm"
)

// InternshipFilter narrows listing results. Zero values match all.
type InternshipFilter struct {
	Department string // exact match
	Company    string // case-insensitive substring
	Duration   string // exact match
}

type InternshipRepository interface {
	Create(ctx context.Context, in *models.Internship) error
	GetByID(ctx context.Context, id string) (*models.Internship, error)
	GetByIDWithPoster(ctx context.Context, id string) (*models.Internship, error)
	List(ctx context.Context, f InternshipFilter) ([]models.Internship, error)
	Update(ctx context.Context, in *models.Internship) error
	Delete(ctx context.Context, id string) error
}

type internshipRepo struct {
	db *gorm.DB
}

func NewInternshipRepo(db *gorm.DB) InternshipRepository {
	return &internshipRepo{db: db}
}

func (r *internshipRepo) Create(ctx context.Context, in *models.Internship) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *internshipRepo) GetByID(ctx context.Context, id string) (*models.Internship, error) {
	var in models.Internship
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &in, err
}

func (r *internshipRepo) GetByIDWithPoster(ctx context.Context, id string) (*models.Internship, error) {
	var in models.Internship
	err := r.db.WithContext(ctx).
		Preload("PostedBy").
		Where("id = ?", id).
		Take(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &in, err
}

func (r *internshipRepo) List(ctx context.Context, f InternshipFilter) ([]models.Internship, error) {
	q := r.db.WithContext(ctx).Model(&models.Internship{}).Preload("PostedBy")
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Company != "" {
		q = q.Where("company ILIKE ?", "%"+f.Company+"%")
	}
	if f.Duration != "" {
		q = q.Where("duration = ?", f.Duration)
	}

	var out []models.Internship
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *internshipRepo) Update(ctx context.Context, in *models.Internship) error {
	return r.db.WithContext(ctx).Save(in).Error
}

func (r *internshipRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Internship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
