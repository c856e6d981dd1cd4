package auth

import "github.com/gobazaar/backend/internal/models"

// Resources and verbs the admin panel exposes. Authorization is a pure
// lookup in the capability table, no role hierarchy in code.
const (
	ResourceProduct = "product"
	ResourceOrder   = "order"
	ResourceAdmin   = "admin"
	ResourceUser    = "user"
)

const (
	VerbRead   = "read"
	VerbCreate = "create"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

var capabilities = map[string]map[string][]string{
	models.RoleSuperAdmin: {
		ResourceProduct: {VerbRead, VerbCreate, VerbUpdate, VerbDelete},
		ResourceOrder:   {VerbRead, VerbUpdate, VerbDelete},
		ResourceAdmin:   {VerbRead, VerbCreate, VerbUpdate, VerbDelete},
		ResourceUser:    {VerbRead, VerbDelete},
	},
	models.RoleAdmin: {
		ResourceProduct: {VerbRead, VerbCreate, VerbUpdate, VerbDelete},
		ResourceOrder:   {VerbRead, VerbUpdate, VerbDelete},
		ResourceUser:    {VerbRead},
	},
	models.RoleVendor: {
		ResourceProduct: {VerbRead, VerbCreate, VerbUpdate, VerbDelete},
	},
	models.RoleDispatcher: {
		ResourceProduct: {VerbRead},
		ResourceOrder:   {VerbRead, VerbUpdate},
	},
}

func Allowed(role, resource, verb string) bool {
	verbs, ok := capabilities[role][resource]
	if !ok {
		return false
	}
	for _, v := range verbs {
		if v == verb {
			return true
		}
	}
	return false
}

func KnownRole(role string) bool {
	_, ok := capabilities[role]
	return ok
}
