// Package policy holds the role and ownership decisions applied before every
// mutation. Callers resolve the resource first (missing resources are
// not-found, never an ownership denial) and then ask policy.
package policy

import "github.com/yoockh/internhub/internal/models"

// Caller is the authenticated identity attached to a request.
type Caller struct {
	ID   string
	Role models.UserRole
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// CanCreatePosting: faculty and admins post internships.
func CanCreatePosting(c Caller) bool {
	return c.Role == models.RoleFaculty || c.Role == models.RoleAdmin
}

// CanMutatePosting: the posting's owner or an admin may update or delete it.
func CanMutatePosting(c Caller, in *models.Internship) bool {
	if in == nil {
		return false
	}
	return c.IsAdmin() || c.ID == in.PostedByID
}

// CanReviewApplications covers listing an internship's applications, deciding
// their status, and verifying certificates. Same rule as posting mutation:
// owner or admin. The check reads the typed PostedByID, never a preloaded
// projection.
func CanReviewApplications(c Caller, in *models.Internship) bool {
	return CanMutatePosting(c, in)
}

// CanApply: only students apply.
func CanApply(c Caller) bool {
	return c.Role == models.RoleStudent
}

// CanUploadCertificate: only the applicant uploads their certificate.
func CanUploadCertificate(c Caller, app *models.Application) bool {
	if app == nil {
		return false
	}
	return c.ID == app.StudentID
}
