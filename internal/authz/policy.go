package authz

import "go-orgkit/internal/tenant"

// Resource/action pairs yang dipakai route registration dan service layer.
const (
	ResourceOkr     = "okr"
	ResourceOkrGoal = "okr_goal"
	ResourceBmc     = "bmc"
	ResourceProfile = "company_profile"
	ResourceOrg     = "org_structure"
	ResourceDept    = "department"
	ResourceHier    = "hierarchy"
	ResourceProject = "project"
	ResourceUser    = "user"

	ActionRead  = "read"
	ActionWrite = "write"
)

type policyRule struct {
	role     string
	resource string
	action   string
}

var allRoles = []string{
	tenant.RoleCeo,
	tenant.RoleDirector,
	tenant.RoleManajer,
	tenant.RoleSupervisor,
	tenant.RoleStaff,
}

// policyTable adalah satu-satunya sumber aturan role->resource:action.
// Kecocokan tenant untuk resource ber-id dicek terpisah di service layer.
var policyTable = buildPolicyTable()

func buildPolicyTable() []policyRule {
	var rules []policyRule

	grant := func(resource, action string, roles ...string) {
		for _, r := range roles {
			rules = append(rules, policyRule{role: r, resource: resource, action: action})
		}
	}

	// OKR: goal hanya CEO, level di bawahnya CEO + director.
	grant(ResourceOkr, ActionRead, tenant.RoleCeo, tenant.RoleDirector)
	grant(ResourceOkr, ActionWrite, tenant.RoleCeo, tenant.RoleDirector)
	grant(ResourceOkrGoal, ActionWrite, tenant.RoleCeo)

	// Business Model Canvas.
	grant(ResourceBmc, ActionRead, tenant.RoleCeo, tenant.RoleDirector, tenant.RoleManajer)
	grant(ResourceBmc, ActionWrite, tenant.RoleCeo, tenant.RoleDirector)

	// Profil perusahaan: semua role boleh lihat, hanya CEO yang mengubah.
	grant(ResourceProfile, ActionRead, allRoles...)
	grant(ResourceProfile, ActionWrite, tenant.RoleCeo)

	// Struktur organisasi.
	grant(ResourceOrg, ActionRead, allRoles...)
	grant(ResourceDept, ActionWrite, tenant.RoleCeo, tenant.RoleDirector)
	grant(ResourceHier, ActionWrite, tenant.RoleCeo, tenant.RoleDirector, tenant.RoleManajer)

	// Project & task tracker: listing/report terbuka, manajemen untuk admin role.
	grant(ResourceProject, ActionRead, allRoles...)
	grant(ResourceProject, ActionWrite, tenant.RoleCeo, tenant.RoleDirector, tenant.RoleManajer)

	// Manajemen user organisasi.
	grant(ResourceUser, ActionRead, allRoles...)
	grant(ResourceUser, ActionWrite, tenant.RoleCeo, tenant.RoleDirector)

	return rules
}
