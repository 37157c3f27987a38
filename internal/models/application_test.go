package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to pending is a no-op", StatusPending, StatusPending, true},
		{"approved to approved is a no-op", StatusApproved, StatusApproved, true},
		{"approved back to pending", StatusApproved, StatusPending, false},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"rejected back to pending", StatusRejected, StatusPending, false},
		{"unknown target", StatusPending, ApplicationStatus("withdrawn"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestCertificateStatusCanVerify(t *testing.T) {
	tests := []struct {
		name string
		from CertificateStatus
		to   CertificateStatus
		want bool
	}{
		{"pending to verified", CertPendingVerification, CertVerified, true},
		{"pending to rejected", CertPendingVerification, CertRejected, true},
		{"verified repeat is a no-op", CertVerified, CertVerified, true},
		{"nothing uploaded yet", CertNotUploaded, CertVerified, false},
		{"verified to rejected", CertVerified, CertRejected, false},
		{"rejected to verified without re-upload", CertRejected, CertVerified, false},
		{"cannot verify back to not_uploaded", CertPendingVerification, CertNotUploaded, false},
		{"cannot verify to pending", CertNotUploaded, CertPendingVerification, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanVerify(tt.to))
		})
	}
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleFaculty.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, UserRole("").Valid())
	assert.False(t, UserRole("superuser").Valid())
}
