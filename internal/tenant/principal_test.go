package tenant_test

import (
	"errors"
	"testing"

	"go-orgkit/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	ceoID := uuid.New().String()

	t.Run("ceo resolves to own id", func(t *testing.T) {
		got, err := tenant.Resolve(tenant.Principal{ID: ceoID, Role: tenant.RoleCeo, CEOID: ceoID})

		assert.NoError(t, err)
		assert.Equal(t, ceoID, got)
	})

	t.Run("staff resolves to stored ceo_id", func(t *testing.T) {
		got, err := tenant.Resolve(tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleStaff, CEOID: ceoID})

		assert.NoError(t, err)
		assert.Equal(t, ceoID, got)
	})

	t.Run("non-ceo without ceo_id is an integrity error", func(t *testing.T) {
		_, err := tenant.Resolve(tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleDirector})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, tenant.ErrUnscopedPrincipal))
	})
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{"ceo", "director", "manajer", "supervisor", "staff"} {
		assert.True(t, tenant.ValidRole(role), role)
	}
	assert.False(t, tenant.ValidRole("admin"))
	assert.False(t, tenant.ValidRole(""))
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, tenant.IsAdminRole(tenant.RoleCeo))
	assert.True(t, tenant.IsAdminRole(tenant.RoleDirector))
	assert.True(t, tenant.IsAdminRole(tenant.RoleManajer))
	assert.False(t, tenant.IsAdminRole(tenant.RoleSupervisor))
	assert.False(t, tenant.IsAdminRole(tenant.RoleStaff))
}
