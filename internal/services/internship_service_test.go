package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/internhub/internal/models"
	pgrepo "github.com/yoockh/internhub/internal/repositories/postgres"
	"github.com/yoockh/internhub/internal/utils"
)

// mapCache is an in-memory Cache for asserting hit/miss behavior.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (c *mapCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func newInternshipFixture(t *testing.T) (*memStore, InternshipService, *mapCache) {
	t.Helper()
	s := newMemStore()
	s.users["fac-1"] = &models.User{ID: "fac-1", Name: "Dr. Rao", Email: "rao@uni.edu", Role: models.RoleFaculty}
	s.users["fac-2"] = &models.User{ID: "fac-2", Name: "Dr. Lin", Email: "lin@uni.edu", Role: models.RoleFaculty}

	c := newMapCache()
	svc := NewInternshipService(memInternshipRepo{s}, memApplicationRepo{s}, c)
	return s, svc, c
}

func TestCreateInternshipRoleGate(t *testing.T) {
	_, svc, _ := newInternshipFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, student, CreateInternshipInput{Title: "Intern", Company: "Acorp"})
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	rec, err := svc.Create(ctx, owner, CreateInternshipInput{Title: "Intern", Company: "Acorp"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, rec.PostedByID)
	assert.NotEmpty(t, rec.ID)
}

func TestCreateInternshipRequiredFields(t *testing.T) {
	_, svc, _ := newInternshipFixture(t)

	_, err := svc.Create(context.Background(), owner, CreateInternshipInput{Title: "  ", Company: "Acorp"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestListCompanyFilterIsCaseInsensitiveSubstring(t *testing.T) {
	s, svc, _ := newInternshipFixture(t)
	ctx := context.Background()

	s.internships["int-1"] = &models.Internship{ID: "int-1", Title: "Backend", Company: "Acorp Inc", PostedByID: "fac-1"}
	s.internships["int-2"] = &models.Internship{ID: "int-2", Title: "Frontend", Company: "Beta Labs", PostedByID: "fac-1"}

	views, err := svc.List(ctx, pgrepo.InternshipFilter{Company: "aCoRp"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Acorp Inc", views[0].Company)

	views, err = svc.List(ctx, pgrepo.InternshipFilter{Company: "nowhere"})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListJoinsPosterProjection(t *testing.T) {
	s, svc, _ := newInternshipFixture(t)

	s.internships["int-1"] = &models.Internship{ID: "int-1", Title: "Backend", Company: "Acorp Inc", PostedByID: "fac-1"}

	views, err := svc.List(context.Background(), pgrepo.InternshipFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Dr. Rao", views[0].Poster.Name)
	assert.Equal(t, "rao@uni.edu", views[0].Poster.Email)
	assert.Empty(t, views[0].Poster.Resume, "poster projection carries name and email only")
}

func TestListUnfilteredUsesCache(t *testing.T) {
	s, svc, c := newInternshipFixture(t)
	ctx := context.Background()

	s.internships["int-1"] = &models.Internship{ID: "int-1", Title: "Backend", Company: "Acorp Inc", PostedByID: "fac-1"}

	views, err := svc.List(ctx, pgrepo.InternshipFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Contains(t, c.data, listCacheKey)

	// a write that bypasses the service is invisible until the cache expires
	s.internships["int-2"] = &models.Internship{ID: "int-2", Title: "Frontend", Company: "Beta", PostedByID: "fac-1"}
	views, err = svc.List(ctx, pgrepo.InternshipFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 1)

	// mutations through the service invalidate it
	_, err = svc.Create(ctx, owner, CreateInternshipInput{Title: "Infra", Company: "Gamma"})
	require.NoError(t, err)
	assert.NotContains(t, c.data, listCacheKey)

	views, err = svc.List(ctx, pgrepo.InternshipFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestUpdateInternshipOwnership(t *testing.T) {
	s, svc, _ := newInternshipFixture(t)
	ctx := context.Background()

	s.internships["int-1"] = &models.Internship{ID: "int-1", Title: "Backend", Company: "Acorp Inc", PostedByID: "fac-1"}

	title := "Senior Backend"
	_, err := svc.Update(ctx, nonOwner, "int-1", UpdateInternshipInput{Title: &title})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	rec, err := svc.Update(ctx, owner, "int-1", UpdateInternshipInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend", rec.Title)
	assert.Equal(t, "Acorp Inc", rec.Company, "unsupplied fields keep their value")

	rec, err = svc.Update(ctx, admin, "int-1", UpdateInternshipInput{Duration: strPtr("6 months")})
	require.NoError(t, err)
	assert.Equal(t, "6 months", rec.Duration)
}

func TestUpdateInternshipNotFoundBeforeOwnership(t *testing.T) {
	_, svc, _ := newInternshipFixture(t)

	title := "x"
	_, err := svc.Update(context.Background(), nonOwner, "missing", UpdateInternshipInput{Title: &title})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound), "missing resource is 404, not an ownership denial")
}

func TestDeleteInternshipBlockedByApplications(t *testing.T) {
	s, svc, _ := newInternshipFixture(t)
	ctx := context.Background()

	s.internships["int-1"] = &models.Internship{ID: "int-1", Title: "Backend", Company: "Acorp Inc", PostedByID: "fac-1"}
	s.applications["app-1"] = &models.Application{ID: "app-1", StudentID: "stu-1", InternshipID: "int-1", Status: models.StatusPending}

	err := svc.Delete(ctx, owner, "int-1")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	delete(s.applications, "app-1")
	require.NoError(t, svc.Delete(ctx, owner, "int-1"))
	assert.Empty(t, s.internships)
}

func TestDeleteInternshipOwnership(t *testing.T) {
	s, svc, _ := newInternshipFixture(t)

	s.internships["int-1"] = &models.Internship{ID: "int-1", Title: "Backend", Company: "Acorp Inc", PostedByID: "fac-1"}

	err := svc.Delete(context.Background(), nonOwner, "int-1")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Len(t, s.internships, 1)
}

func strPtr(s string) *string { return &s }
