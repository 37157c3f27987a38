package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/internhub/internal/cache"
	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/policy"
	pgrepo "github.com/yoockh/internhub/internal/repositories/postgres"
	"github.com/yoockh/internhub/internal/utils"
)

// listCacheKey fronts the unfiltered listing only; filtered queries always hit
// the database.
const listCacheKey = "internships:list:all"

const listCacheTTL = 30 * time.Second

type CreateInternshipInput struct {
	Title       string
	Company     string
	Description string
	Location    string
	Duration    string
	Department  string
}

// UpdateInternshipInput applies a partial merge; nil fields are untouched.
type UpdateInternshipInput struct {
	Title       *string
	Company     *string
	Description *string
	Location    *string
	Duration    *string
	Department  *string
}

// InternshipView is a posting joined with its poster's projection.
type InternshipView struct {
	models.Internship
	Poster models.UserRef `json:"poster"`
}

type InternshipService interface {
	Create(ctx context.Context, caller policy.Caller, in CreateInternshipInput) (*models.Internship, error)
	List(ctx context.Context, f pgrepo.InternshipFilter) ([]InternshipView, error)
	Get(ctx context.Context, id string) (*InternshipView, error)
	Update(ctx context.Context, caller policy.Caller, id string, in UpdateInternshipInput) (*models.Internship, error)
	Delete(ctx context.Context, caller policy.Caller, id string) error
}

type internshipService struct {
	internships  pgrepo.InternshipRepository
	applications pgrepo.ApplicationRepository
	cache        cache.Cache
}

func NewInternshipService(internships pgrepo.InternshipRepository, applications pgrepo.ApplicationRepository, c cache.Cache) InternshipService {
	if c == nil {
		c = cache.Noop{}
	}
	return &internshipService{internships: internships, applications: applications, cache: c}
}

func (s *internshipService) Create(ctx context.Context, caller policy.Caller, in CreateInternshipInput) (*models.Internship, error) {
	const op = "InternshipService.Create"

	if !policy.CanCreatePosting(caller) {
		return nil, utils.E(utils.CodeForbidden, op, "only faculty and admins can post internships", nil)
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Company) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and company are required", nil)
	}

	now := time.Now().UTC()
	rec := &models.Internship{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Description: in.Description,
		Location:    in.Location,
		Duration:    in.Duration,
		Department:  in.Department,
		PostedByID:  caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.internships.Create(ctx, rec); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create internship", err)
	}
	_ = s.cache.Del(ctx, listCacheKey)
	return rec, nil
}

func (s *internshipService) List(ctx context.Context, f pgrepo.InternshipFilter) ([]InternshipView, error) {
	const op = "InternshipService.List"

	unfiltered := f == pgrepo.InternshipFilter{}
	if unfiltered {
		var cached []InternshipView
		if hit, err := s.cache.GetJSON(ctx, listCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.internships.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list internships", err)
	}

	out := make([]InternshipView, 0, len(rows))
	for i := range rows {
		out = append(out, InternshipView{Internship: rows[i], Poster: rows[i].Owner()})
	}

	if unfiltered {
		_ = s.cache.SetJSON(ctx, listCacheKey, out, listCacheTTL)
	}
	return out, nil
}

func (s *internshipService) Get(ctx context.Context, id string) (*InternshipView, error) {
	const op = "InternshipService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}

	rec, err := s.internships.GetByIDWithPoster(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get internship", err)
	}
	return &InternshipView{Internship: *rec, Poster: rec.Owner()}, nil
}

func (s *internshipService) Update(ctx context.Context, caller policy.Caller, id string, in UpdateInternshipInput) (*models.Internship, error) {
	const op = "InternshipService.Update"

	rec, err := s.internships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get internship", err)
	}

	if !policy.CanMutatePosting(caller, rec) {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authorized to modify this internship", nil)
	}

	if in.Title != nil {
		rec.Title = strings.TrimSpace(*in.Title)
	}
	if in.Company != nil {
		rec.Company = strings.TrimSpace(*in.Company)
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.Location != nil {
		rec.Location = *in.Location
	}
	if in.Duration != nil {
		rec.Duration = *in.Duration
	}
	if in.Department != nil {
		rec.Department = *in.Department
	}
	if rec.Title == "" || rec.Company == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and company cannot be empty", nil)
	}
	rec.UpdatedAt = time.Now().UTC()

	if err := s.internships.Update(ctx, rec); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update internship", err)
	}
	_ = s.cache.Del(ctx, listCacheKey)
	return rec, nil
}

// Delete refuses to remove a posting that still has applications; cascade
// deleting would drop certificate history, so the poster must resolve the
// applications first.
func (s *internshipService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	const op = "InternshipService.Delete"

	rec, err := s.internships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get internship", err)
	}

	if !policy.CanMutatePosting(caller, rec) {
		return utils.E(utils.CodeUnauthorized, op, "not authorized to delete this internship", nil)
	}

	n, err := s.applications.CountByInternship(ctx, id)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}
	if n > 0 {
		return utils.E(utils.CodeConflict, op, "internship still has applications", nil)
	}

	if err := s.internships.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete internship", err)
	}
	_ = s.cache.Del(ctx, listCacheKey)
	return nil
}
