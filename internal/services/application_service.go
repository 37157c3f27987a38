package services

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/policy"
	pgrepo "github.com/yoockh/internhub/internal/repositories/postgres"
	"github.com/yoockh/internhub/internal/storage"
	"github.com/yoockh/internhub/internal/utils"
)

// FileInput is an uploaded blob handed down from the transport layer.
type FileInput struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// InternshipRef is the posting projection joined into a student's listing.
type InternshipRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location,omitempty"`
}

// ApplicationView is an application joined with either the posting projection
// (student listings) or the student projection (reviewer listings).
type ApplicationView struct {
	models.Application
	Internship *InternshipRef  `json:"internship,omitempty"`
	Student    *models.UserRef `json:"student,omitempty"`
}

type ApplicationService interface {
	Apply(ctx context.Context, caller policy.Caller, internshipID string, resume *FileInput) (*models.Application, error)
	ListMine(ctx context.Context, caller policy.Caller) ([]ApplicationView, error)
	ListForInternship(ctx context.Context, caller policy.Caller, internshipID string) ([]ApplicationView, error)
	UpdateStatus(ctx context.Context, caller policy.Caller, id string, status models.ApplicationStatus) (*models.Application, error)
	UploadCertificate(ctx context.Context, caller policy.Caller, id string, file FileInput) (*models.Application, error)
	VerifyCertificate(ctx context.Context, caller policy.Caller, id string, status models.CertificateStatus) (*models.Application, error)
}

type applicationService struct {
	applications pgrepo.ApplicationRepository
	internships  pgrepo.InternshipRepository
	uploader     storage.Uploader
}

func NewApplicationService(applications pgrepo.ApplicationRepository, internships pgrepo.InternshipRepository, uploader storage.Uploader) ApplicationService {
	return &applicationService{applications: applications, internships: internships, uploader: uploader}
}

func (s *applicationService) Apply(ctx context.Context, caller policy.Caller, internshipID string, resume *FileInput) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if internshipID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "internship_id is required", nil)
	}

	if _, err := s.internships.GetByID(ctx, internshipID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get internship", err)
	}

	if !policy.CanApply(caller) {
		return nil, utils.E(utils.CodeForbidden, op, "only students can apply", nil)
	}

	exists, err := s.applications.ExistsForPair(ctx, caller.ID, internshipID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "you have already applied for this internship", nil)
	}

	// blob goes out first; nothing is persisted if the write fails
	var resumePath string
	if resume != nil {
		resumePath, err = s.storeFile(ctx, "resumes/"+caller.ID, *resume)
		if err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to store resume", err)
		}
	}

	app := &models.Application{
		ID:                uuid.NewString(),
		StudentID:         caller.ID,
		InternshipID:      internshipID,
		Status:            models.StatusPending,
		AppliedAt:         time.Now().UTC(),
		ResumeSnapshot:    resumePath,
		CertificateStatus: models.CertNotUploaded,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		// unique index closes the check-then-write race
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "you have already applied for this internship", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, caller policy.Caller) ([]ApplicationView, error) {
	const op = "ApplicationService.ListMine"

	rows, err := s.applications.ListByStudent(ctx, caller.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	out := make([]ApplicationView, 0, len(rows))
	for i := range rows {
		v := ApplicationView{Application: rows[i]}
		if in := rows[i].Internship; in != nil {
			v.Internship = &InternshipRef{
				ID:       in.ID,
				Title:    in.Title,
				Company:  in.Company,
				Location: in.Location,
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *applicationService) ListForInternship(ctx context.Context, caller policy.Caller, internshipID string) ([]ApplicationView, error) {
	const op = "ApplicationService.ListForInternship"

	in, err := s.internships.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get internship", err)
	}

	if !policy.CanReviewApplications(caller, in) {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authorized to view these applications", nil)
	}

	rows, err := s.applications.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	out := make([]ApplicationView, 0, len(rows))
	for i := range rows {
		v := ApplicationView{Application: rows[i]}
		if st := rows[i].Student; st != nil {
			ref := st.Ref()
			v.Student = &ref
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, caller policy.Caller, id string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	app, in, err := s.getWithInternship(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanReviewApplications(caller, in) {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authorized to decide this application", nil)
	}

	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be pending, approved, or rejected", nil)
	}
	if !app.Status.CanTransition(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application status is already decided", nil)
	}
	if app.Status == status {
		return app, nil
	}

	app.Status = status
	if err := s.applications.Save(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update status", err)
	}
	return app, nil
}

func (s *applicationService) UploadCertificate(ctx context.Context, caller policy.Caller, id string, file FileInput) (*models.Application, error) {
	const op = "ApplicationService.UploadCertificate"

	app, err := s.getApplication(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanUploadCertificate(caller, app) {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authorized to upload for this application", nil)
	}

	if app.Status != models.StatusApproved {
		return nil, utils.E(utils.CodeInvalidArgument, op, "internship not approved yet", nil)
	}
	if file.Reader == nil || file.FileName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "certificate file is required", nil)
	}

	storedPath, err := s.storeFile(ctx, "certificates/"+app.ID, file)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store certificate", err)
	}

	// re-upload after a rejection replaces the file and reopens verification
	app.Certificate = storedPath
	app.CertificateStatus = models.CertPendingVerification
	if err := s.applications.Save(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save certificate", err)
	}
	return app, nil
}

func (s *applicationService) VerifyCertificate(ctx context.Context, caller policy.Caller, id string, status models.CertificateStatus) (*models.Application, error) {
	const op = "ApplicationService.VerifyCertificate"

	app, in, err := s.getWithInternship(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanReviewApplications(caller, in) {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authorized to verify this certificate", nil)
	}

	if status != models.CertVerified && status != models.CertRejected {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be verified or rejected", nil)
	}
	if !app.CertificateStatus.CanVerify(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no certificate pending verification", nil)
	}
	if app.CertificateStatus == status {
		return app, nil
	}

	app.CertificateStatus = status
	if err := s.applications.Save(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update certificate status", err)
	}
	return app, nil
}

func (s *applicationService) getApplication(ctx context.Context, op, id string) (*models.Application, error) {
	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application id is required", nil)
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	return app, nil
}

// getWithInternship resolves the application and its posting for ownership
// checks. The posting is re-fetched by the typed FK so the decision never
// depends on a preloaded projection.
func (s *applicationService) getWithInternship(ctx context.Context, op, id string) (*models.Application, *models.Internship, error) {
	app, err := s.getApplication(ctx, op, id)
	if err != nil {
		return nil, nil, err
	}
	in, err := s.internships.GetByID(ctx, app.InternshipID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil, utils.E(utils.CodeNotFound, op, "internship not found", err)
		}
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to get internship", err)
	}
	return app, in, nil
}

func (s *applicationService) storeFile(ctx context.Context, prefix string, file FileInput) (string, error) {
	if s.uploader == nil {
		return "", errors.New("uploader is not configured")
	}
	objectName := prefix + "/" + uuid.NewString() + path.Ext(file.FileName)
	return s.uploader.Upload(ctx, objectName, file.ContentType, file.Reader)
}
