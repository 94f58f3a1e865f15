package domain

import (
	"sort"
	"strings"
)

// Role is a staff member's role inside a shop.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleManager      Role = "manager"
	RoleBarber       Role = "barber"
	RoleReceptionist Role = "receptionist"
)

// Roles lists every role, most privileged first.
var Roles = []Role{RoleOwner, RoleManager, RoleBarber, RoleReceptionist}

// IsValid returns true if the role is a known role.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// roleAliases maps role names used by older clients and imported accounts
// onto the canonical roles.
var roleAliases = map[string]Role{
	"owner":        RoleOwner,
	"admin":        RoleOwner,
	"shop_owner":   RoleOwner,
	"super_admin":  RoleOwner,
	"manager":      RoleManager,
	"shop_manager": RoleManager,
	"barber":       RoleBarber,
	"stylist":      RoleBarber,
	"staff":        RoleBarber,
	"receptionist": RoleReceptionist,
	"front_desk":   RoleReceptionist,
	"frontdesk":    RoleReceptionist,
}

// ParseRole resolves a role name or one of its aliases.
func ParseRole(name string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if role, ok := roleAliases[key]; ok {
		return role, nil
	}
	return "", NewDomainErrorWithCause(ErrCodeValidation, "unknown role", ErrInvalidRole)
}

// Permission gates access to a section of the product.
type Permission string

const (
	PermNone               Permission = ""
	PermViewDashboard      Permission = "dashboard:view"
	PermManageCalendar     Permission = "calendar:manage"
	PermViewOwnSchedule    Permission = "calendar:own"
	PermManageAppointments Permission = "appointments:manage"
	PermManageClients      Permission = "clients:manage"
	PermManageStaff        Permission = "staff:manage"
	PermViewCommissions    Permission = "staff:commissions"
	PermManageServices     Permission = "services:manage"
	PermManagePayments     Permission = "payments:manage"
	PermIssueRefunds       Permission = "payments:refund"
	PermManageMarketing    Permission = "marketing:manage"
	PermViewAnalytics      Permission = "analytics:view"
	PermManageSettings     Permission = "settings:manage"
	PermManageIntegrations Permission = "settings:integrations"
	PermManageBilling      Permission = "settings:billing"
	PermPersonalSettings   Permission = "settings:personal"
)

// PermissionSet is the set of permissions a role holds.
type PermissionSet map[Permission]struct{}

func newPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the set contains p. The empty permission is always held.
func (s PermissionSet) Has(p Permission) bool {
	if p == PermNone {
		return true
	}
	_, ok := s[p]
	return ok
}

// Sorted returns the permissions in lexical order.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var rolePermissions = map[Role]PermissionSet{
	RoleOwner: newPermissionSet(
		PermViewDashboard, PermManageCalendar, PermViewOwnSchedule, PermManageAppointments,
		PermManageClients, PermManageStaff, PermViewCommissions, PermManageServices,
		PermManagePayments, PermIssueRefunds, PermManageMarketing, PermViewAnalytics,
		PermManageSettings, PermManageIntegrations, PermManageBilling, PermPersonalSettings,
	),
	RoleManager: newPermissionSet(
		PermViewDashboard, PermManageCalendar, PermViewOwnSchedule, PermManageAppointments,
		PermManageClients, PermManageStaff, PermViewCommissions, PermManageServices,
		PermManagePayments, PermIssueRefunds, PermManageMarketing, PermViewAnalytics,
		PermManageSettings, PermPersonalSettings,
	),
	RoleBarber: newPermissionSet(
		PermViewDashboard, PermViewOwnSchedule, PermManageAppointments, PermManageClients,
		PermViewCommissions, PermPersonalSettings,
	),
	RoleReceptionist: newPermissionSet(
		PermViewDashboard, PermManageCalendar, PermViewOwnSchedule, PermManageAppointments,
		PermManageClients, PermManagePayments, PermPersonalSettings,
	),
}

// PermissionsFor returns the permission set of role. Unknown roles get an
// empty set.
func PermissionsFor(role Role) PermissionSet {
	if set, ok := rolePermissions[role]; ok {
		return set
	}
	return PermissionSet{}
}

// Allows reports whether role holds permission p.
func Allows(role Role, p Permission) bool {
	return PermissionsFor(role).Has(p)
}
