package domain

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleProfessional Role = "professional"
)

const (
	CapViewSchedule       Capability = "view_schedule"
	CapManageAppointments Capability = "manage_appointments"
	CapManageClients      Capability = "manage_clients"
	CapViewCatalog        Capability = "view_catalog"
	CapManageCatalog      Capability = "manage_catalog"
	CapRecordSales        Capability = "record_sales"
	CapManageExpenses     Capability = "manage_expenses"
	CapViewReports        Capability = "view_reports"
	CapManageStaff        Capability = "manage_staff"
	CapManageSettings     Capability = "manage_settings"
	CapManageUsers        Capability = "manage_users"
)

type Role string
type Capability string

var allCapabilities = []Capability{
	CapViewSchedule,
	CapManageAppointments,
	CapManageClients,
	CapViewCatalog,
	CapManageCatalog,
	CapRecordSales,
	CapManageExpenses,
	CapViewReports,
	CapManageStaff,
	CapManageSettings,
	CapManageUsers,
}

var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleAdmin: capabilitySet(allCapabilities...),
	RoleReceptionist: capabilitySet(
		CapViewSchedule,
		CapManageAppointments,
		CapManageClients,
		CapViewCatalog,
		CapRecordSales,
	),
	RoleProfessional: capabilitySet(
		CapViewSchedule,
		CapViewCatalog,
	),
}

func capabilitySet(caps ...Capability) map[Capability]struct{} {
	out := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		out[c] = struct{}{}
	}
	return out
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Allows reports whether the role grants the capability. Unknown roles grant nothing.
func Allows(role Role, c Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// Capabilities lists what a role grants, in declaration order.
func Capabilities(role Role) []Capability {
	var out []Capability
	for _, c := range allCapabilities {
		if Allows(role, c) {
			out = append(out, c)
		}
	}
	return out
}
