package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/utils"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create relies on the (student_id, internship_id) unique index; a
	// concurrent duplicate insert surfaces as utils.ErrDuplicate.
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ExistsForPair(ctx context.Context, studentID, internshipID string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Application, error)
	ListByInternship(ctx context.Context, internshipID string) ([]models.Application, error)
	CountByInternship(ctx context.Context, internshipID string) (int64, error)
	Save(ctx context.Context, a *models.Application) error
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) ExistsForPair(ctx context.Context, studentID, internshipID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("student_id = ? AND internship_id = ?", studentID, internshipID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	var out []models.Application
	err := r.db.WithContext(ctx).
		Preload("Internship").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&out).Error
	return out, err
}

func (r *applicationRepo) ListByInternship(ctx context.Context, internshipID string) ([]models.Application, error) {
	var out []models.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("internship_id = ?", internshipID).
		Order("applied_at DESC").
		Find(&out).Error
	return out, err
}

func (r *applicationRepo) CountByInternship(ctx context.Context, internshipID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("internship_id = ?", internshipID).
		Count(&count).Error
	return count, err
}

func (r *applicationRepo) Save(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}
