package services

// In-memory fakes standing in for the postgres repositories and the blob
// uploader, so service tests exercise the workflow rules without a database.

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/yoockh/internhub/internal/models"
	pgrepo "github.com/yoockh/internhub/internal/repositories/postgres"
	"github.com/yoockh/internhub/internal/utils"
)

type memStore struct {
	users        map[string]*models.User
	internships  map[string]*models.Internship
	applications map[string]*models.Application
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]*models.User),
		internships:  make(map[string]*models.Internship),
		applications: make(map[string]*models.Application),
	}
}

// UserRepository

func (m *memStore) Create(ctx context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return utils.ErrDuplicate
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

// InternshipRepository, wrapped so method names don't collide with the user
// repo on the same struct.

type memInternshipRepo struct{ s *memStore }

func (m memInternshipRepo) Create(ctx context.Context, in *models.Internship) error {
	cp := *in
	m.s.internships[in.ID] = &cp
	return nil
}

func (m memInternshipRepo) GetByID(ctx context.Context, id string) (*models.Internship, error) {
	in, ok := m.s.internships[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *in
	return &cp, nil
}

func (m memInternshipRepo) GetByIDWithPoster(ctx context.Context, id string) (*models.Internship, error) {
	in, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if poster, ok := m.s.users[in.PostedByID]; ok {
		cp := *poster
		in.PostedBy = &cp
	}
	return in, nil
}

func (m memInternshipRepo) List(ctx context.Context, f pgrepo.InternshipFilter) ([]models.Internship, error) {
	var out []models.Internship
	for _, in := range m.s.internships {
		if f.Department != "" && in.Department != f.Department {
			continue
		}
		if f.Company != "" && !strings.Contains(strings.ToLower(in.Company), strings.ToLower(f.Company)) {
			continue
		}
		if f.Duration != "" && in.Duration != f.Duration {
			continue
		}
		cp := *in
		if poster, ok := m.s.users[in.PostedByID]; ok {
			pcp := *poster
			cp.PostedBy = &pcp
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memInternshipRepo) Update(ctx context.Context, in *models.Internship) error {
	if _, ok := m.s.internships[in.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *in
	m.s.internships[in.ID] = &cp
	return nil
}

func (m memInternshipRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.s.internships[id]; !ok {
		return utils.ErrNotFound
	}
	delete(m.s.internships, id)
	return nil
}

// ApplicationRepository

type memApplicationRepo struct{ s *memStore }

func (m memApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	for _, existing := range m.s.applications {
		if existing.StudentID == a.StudentID && existing.InternshipID == a.InternshipID {
			return utils.ErrDuplicate
		}
	}
	cp := *a
	m.s.applications[a.ID] = &cp
	return nil
}

func (m memApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	a, ok := m.s.applications[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m memApplicationRepo) ExistsForPair(ctx context.Context, studentID, internshipID string) (bool, error) {
	for _, a := range m.s.applications {
		if a.StudentID == studentID && a.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (m memApplicationRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range m.s.applications {
		if a.StudentID != studentID {
			continue
		}
		cp := *a
		if in, ok := m.s.internships[a.InternshipID]; ok {
			icp := *in
			cp.Internship = &icp
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (m memApplicationRepo) ListByInternship(ctx context.Context, internshipID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range m.s.applications {
		if a.InternshipID != internshipID {
			continue
		}
		cp := *a
		if st, ok := m.s.users[a.StudentID]; ok {
			scp := *st
			cp.Student = &scp
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (m memApplicationRepo) CountByInternship(ctx context.Context, internshipID string) (int64, error) {
	var n int64
	for _, a := range m.s.applications {
		if a.InternshipID == internshipID {
			n++
		}
	}
	return n, nil
}

func (m memApplicationRepo) Save(ctx context.Context, a *models.Application) error {
	if _, ok := m.s.applications[a.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *a
	m.s.applications[a.ID] = &cp
	return nil
}

// fakeUploader records uploads in memory and returns /uploads paths.

type fakeUploader struct {
	blobs map[string][]byte
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{blobs: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	u.blobs[objectName] = buf.Bytes()
	return "/uploads/" + objectName, nil
}

// failUploader simulates blob storage being down.

type failUploader struct{}

func (failUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	return "", errors.New("blob store unavailable")
}
