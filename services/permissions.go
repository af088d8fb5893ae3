package services

import "hotel-backoffice/models"

// Permission keys, "<module>.<action>".
const (
	PermCatalogView        = "catalog.view"
	PermCatalogManage      = "catalog.manage"
	PermClientView         = "client.view"
	PermClientManage       = "client.manage"
	PermClientDelete       = "client.delete"
	PermReservationView    = "reservation.view"
	PermReservationCreate  = "reservation.create"
	PermReservationCancel  = "reservation.cancel"
	PermReservationService = "reservation.services"
	PermRoomClean          = "room.clean"
	PermConsumptionView    = "consumption.view"
	PermConsumptionCreate  = "consumption.create"
	PermInvoiceView        = "invoice.view"
	PermInvoiceGenerate    = "invoice.generate"
	PermInvoiceUpdate      = "invoice.update"
	PermReviewView         = "review.view"
	PermReviewSubmit       = "review.submit"
	PermReviewModerate     = "review.moderate"
	PermDashboardView      = "dashboard.view"
	PermRolesManage        = "roles.manage"
	PermReconcileRun       = "reconcile.run"
)

// RoleDefinition is one row of the default permission matrix. Each role
// inherits the grants of the roles ranked below it.
type RoleDefinition struct {
	Name        string
	Description string
	Rank        int
	Grants      []string
}

var RoleDefinitions = []RoleDefinition{
	{
		Name:        models.RoleClient,
		Description: "Hotel guest with access to their own stays and reviews",
		Rank:        1,
		Grants: []string{
			PermCatalogView,
			PermReservationView,
			PermReviewView,
			PermReviewSubmit,
		},
	},
	{
		Name:        models.RoleStaff,
		Description: "Front desk and housekeeping operations",
		Rank:        2,
		Grants: []string{
			PermClientView,
			PermClientManage,
			PermReservationCreate,
			PermReservationCancel,
			PermReservationService,
			PermRoomClean,
			PermConsumptionView,
			PermConsumptionCreate,
			PermInvoiceView,
			PermInvoiceGenerate,
			PermInvoiceUpdate,
		},
	},
	{
		Name:        models.RoleAdmin,
		Description: "Hotel management with full access",
		Rank:        3,
		Grants: []string{
			PermCatalogManage,
			PermClientDelete,
			PermReviewModerate,
			PermDashboardView,
			PermRolesManage,
			PermReconcileRun,
		},
	},
}

// DefaultPermissions returns the full permission set of a role, inherited
// grants included. Unknown roles get nothing.
func DefaultPermissions(role string) []string {
	rank := 0
	for _, def := range RoleDefinitions {
		if def.Name == role {
			rank = def.Rank
		}
	}
	if rank == 0 {
		return nil
	}
	perms := []string{}
	for _, def := range RoleDefinitions {
		if def.Rank <= rank {
			perms = append(perms, def.Grants...)
		}
	}
	return perms
}

// AllPermissions lists every known permission key.
func AllPermissions() []string {
	all := []string{}
	for _, def := range RoleDefinitions {
		all = append(all, def.Grants...)
	}
	return all
}

func IsRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleStaff || role == models.RoleClient
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID   uint
	Username string
	Role     string
	ClientID *uint
}

func (a Actor) IsAdmin() bool  { return a.Role == models.RoleAdmin }
func (a Actor) IsClient() bool { return a.Role == models.RoleClient }

// SystemActor attributes changes made by Reconcile. Its UserID is 0.
var SystemActor = Actor{Role: models.RoleAdmin, Username: "system"}
