package authz_test

import (
	"errors"
	"testing"

	"go-orgkit/internal/authz"
	"go-orgkit/internal/shared/apperror"
	"go-orgkit/internal/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) authz.Service {
	t.Helper()
	e, err := authz.NewEnforcer()
	require.NoError(t, err)
	return authz.NewService(e)
}

func TestAuthorize_PolicyTable(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"ceo writes company goal", tenant.RoleCeo, authz.ResourceOkrGoal, authz.ActionWrite, true},
		{"director cannot write company goal", tenant.RoleDirector, authz.ResourceOkrGoal, authz.ActionWrite, false},
		{"director writes objective level", tenant.RoleDirector, authz.ResourceOkr, authz.ActionWrite, true},
		{"manajer reads bmc", tenant.RoleManajer, authz.ResourceBmc, authz.ActionRead, true},
		{"manajer cannot write bmc", tenant.RoleManajer, authz.ResourceBmc, authz.ActionWrite, false},
		{"staff cannot write company profile", tenant.RoleStaff, authz.ResourceProfile, authz.ActionWrite, false},
		{"supervisor reads company profile", tenant.RoleSupervisor, authz.ResourceProfile, authz.ActionRead, true},
		{"manajer writes hierarchy", tenant.RoleManajer, authz.ResourceHier, authz.ActionWrite, true},
		{"manajer cannot write department", tenant.RoleManajer, authz.ResourceDept, authz.ActionWrite, false},
		{"manajer manages projects", tenant.RoleManajer, authz.ResourceProject, authz.ActionWrite, true},
		{"staff reads project listing", tenant.RoleStaff, authz.ResourceProject, authz.ActionRead, true},
		{"staff cannot read okr", tenant.RoleStaff, authz.ResourceOkr, authz.ActionRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Authorize(tenant.Principal{ID: "u1", Role: tc.role, CEOID: "c1"}, tc.resource, tc.action)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)

				var appErr *apperror.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperror.CodeForbidden, appErr.Code)
			}
		})
	}
}

func TestAuthorize_StaffCoreValueAlwaysDenied(t *testing.T) {
	svc := newService(t)

	// Kecocokan tenant tidak relevan: role staff selalu ditolak menulis profil.
	for _, ceoID := range []string{"c1", "c2", ""} {
		err := svc.Authorize(tenant.Principal{ID: "u1", Role: tenant.RoleStaff, CEOID: ceoID}, authz.ResourceProfile, authz.ActionWrite)
		assert.Error(t, err)
	}
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	svc := newService(t)

	err := svc.Authorize(tenant.Principal{ID: "u1", Role: "superadmin"}, authz.ResourceOkr, authz.ActionRead)
	assert.Error(t, err)
}
