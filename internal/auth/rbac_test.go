package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gobazaar/backend/internal/models"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     string
		resource string
		verb     string
		want     bool
	}{
		{"super-admin manages admins", models.RoleSuperAdmin, ResourceAdmin, VerbCreate, true},
		{"super-admin deletes orders", models.RoleSuperAdmin, ResourceOrder, VerbDelete, true},
		{"admin cannot touch admins", models.RoleAdmin, ResourceAdmin, VerbCreate, false},
		{"admin reads users", models.RoleAdmin, ResourceUser, VerbRead, true},
		{"admin cannot delete users", models.RoleAdmin, ResourceUser, VerbDelete, false},
		{"vendor manages products", models.RoleVendor, ResourceProduct, VerbUpdate, true},
		{"vendor cannot see orders", models.RoleVendor, ResourceOrder, VerbRead, false},
		{"dispatcher updates orders", models.RoleDispatcher, ResourceOrder, VerbUpdate, true},
		{"dispatcher cannot delete orders", models.RoleDispatcher, ResourceOrder, VerbDelete, false},
		{"dispatcher cannot create products", models.RoleDispatcher, ResourceProduct, VerbCreate, false},
		{"unknown role", "customer", ResourceProduct, VerbRead, false},
		{"unknown resource", models.RoleAdmin, "warehouse", VerbRead, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Allowed(tt.role, tt.resource, tt.verb))
		})
	}
}

func TestKnownRole(t *testing.T) {
	t.Parallel()

	for _, role := range []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleVendor, models.RoleDispatcher} {
		assert.True(t, KnownRole(role), role)
	}
	assert.False(t, KnownRole("user"))
	assert.False(t, KnownRole(""))
}
