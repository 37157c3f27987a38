package models

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
// Transitions are forward-only: pending may move to approved or rejected,
// approved and rejected are terminal. Setting the current value again is
// treated as an allowed no-op.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == StatusPending
}

type CertificateStatus string

const (
	CertNotUploaded         CertificateStatus = "not_uploaded"
	CertPendingVerification CertificateStatus = "pending_verification"
	CertVerified            CertificateStatus = "verified"
	CertRejected            CertificateStatus = "rejected"
)

func (s CertificateStatus) Valid() bool {
	switch s {
	case CertNotUploaded, CertPendingVerification, CertVerified, CertRejected:
		return true
	}
	return false
}

// CanVerify reports whether a reviewer may move the certificate sub-state
// from s to next. Verification only decides a pending certificate; there is
// no path back to not_uploaded, and a decided certificate is only reopened
// by a re-upload.
func (s CertificateStatus) CanVerify(next CertificateStatus) bool {
	if next != CertVerified && next != CertRejected {
		return false
	}
	if s == next {
		return true
	}
	return s == CertPendingVerification
}

// Application links one student to one internship. The (student, internship)
// pair is unique, enforced by a composite index so concurrent applies cannot
// both insert.
type Application struct {
	ID string `gorm:"column:id;type:uuid;primaryKey" json:"id"`

	StudentID string `gorm:"column:student_id;type:uuid;not null;uniqueIndex:idx_applications_student_internship" json:"student_id"`
	Student   *User  `gorm:"foreignKey:StudentID;references:ID" json:"-"`

	InternshipID string      `gorm:"column:internship_id;type:uuid;not null;uniqueIndex:idx_applications_student_internship" json:"internship_id"`
	Internship   *Internship `gorm:"foreignKey:InternshipID;references:ID" json:"-"`

	Status    ApplicationStatus `gorm:"column:status;type:text;not null;default:pending" json:"status"`
	AppliedAt time.Time         `gorm:"column:applied_at;type:timestamptz;not null" json:"applied_at"`

	// resume path captured at apply time, independent of the profile resume
	ResumeSnapshot string `gorm:"column:resume_snapshot;type:text" json:"resume_snapshot,omitempty"`

	Certificate       string            `gorm:"column:certificate;type:text" json:"certificate,omitempty"`
	CertificateStatus CertificateStatus `gorm:"column:certificate_status;type:text;not null;default:not_uploaded" json:"certificate_status"`
}

func (Application) TableName() string { return "applications" }
