package services

import (
	"testing"

	"hotel-backoffice/models"

	"github.com/stretchr/testify/assert"
)

func TestRolesInheritLowerGrants(t *testing.T) {
	client := DefaultPermissions(models.RoleClient)
	staff := DefaultPermissions(models.RoleStaff)
	admin := DefaultPermissions(models.RoleAdmin)

	for _, p := range client {
		assert.Contains(t, staff, p)
	}
	for _, p := range staff {
		assert.Contains(t, admin, p)
	}
	assert.Len(t, admin, len(AllPermissions()))
}

func TestPermissionMatrix(t *testing.T) {
	assert.Contains(t, DefaultPermissions(models.RoleClient), PermReviewSubmit)
	assert.NotContains(t, DefaultPermissions(models.RoleClient), PermReservationCreate)
	assert.Contains(t, DefaultPermissions(models.RoleStaff), PermInvoiceGenerate)
	assert.NotContains(t, DefaultPermissions(models.RoleStaff), PermDashboardView)
	assert.NotContains(t, DefaultPermissions(models.RoleStaff), PermClientDelete)
	assert.Contains(t, DefaultPermissions(models.RoleAdmin), PermRolesManage)
	assert.Nil(t, DefaultPermissions("owner"))
}
