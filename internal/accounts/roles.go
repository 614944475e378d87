package accounts

import (
	"fmt"
	"sort"
)

// Role is a function an account plays for automations and the projection
// base year, bound once per workspace instead of matched by name on use.
type Role string

const (
	RoleCash                    Role = "cash"
	RoleReceivables             Role = "receivables"
	RoleInventory               Role = "inventory"
	RolePPE                     Role = "ppe"
	RoleAccumulatedDepreciation Role = "accumulated_depreciation"
	RolePayables                Role = "payables"
	RoleDebt                    Role = "debt"
	RoleCapital                 Role = "capital"
	RoleRetainedEarnings        Role = "retained_earnings"
)

// AllRoles lists every role.
var AllRoles = []Role{
	RoleCash,
	RoleReceivables,
	RoleInventory,
	RolePPE,
	RoleAccumulatedDepreciation,
	RolePayables,
	RoleDebt,
	RoleCapital,
	RoleRetainedEarnings,
}

// conventionalNames are the account names looked up when a role has no
// configured binding.
var conventionalNames = map[Role][]string{
	RoleCash:                    {"Cash at Bank", "Cash", "Cash on Hand", "Bank"},
	RoleReceivables:             {"Accounts Receivable", "Receivables", "Debtors"},
	RoleInventory:               {"Inventory", "Produce Inventory", "Input Inventory", "Stock"},
	RolePPE:                     {"Property, Plant & Equipment", "Farm Equipment", "Equipment", "Land & Buildings"},
	RoleAccumulatedDepreciation: {"Accumulated Depreciation"},
	RolePayables:                {"Accounts Payable", "Payables", "Creditors", "Wages Payable"},
	RoleDebt:                    {"Bank Loan", "Loans", "Long-term Debt"},
	RoleCapital:                 {"Owner's Capital", "Capital", "Share Capital"},
	RoleRetainedEarnings:        {"Retained Earnings", "Income Surplus"},
}

// Bindings maps each role to the accounts that play it.
type Bindings map[Role][]string

// Primary returns the first account bound to role.
func (b Bindings) Primary(role Role) (string, bool) {
	ids := b[role]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown account role %q", s)
}

// Bind resolves role bindings against the chart. Configured IDs that exist
// in the chart are kept; a role with no configured binding falls back to the
// conventional account names. The returned problems list configured IDs
// that do not resolve and roles left unbound.
func (s *Service) Bind(configured map[string][]string) (Bindings, []string) {
	out := make(Bindings)
	var problems []string

	keys := make([]string, 0, len(configured))
	for k := range configured {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		role, err := ParseRole(k)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		for _, id := range configured[k] {
			if acct, ok := s.Resolve(id); ok {
				out[role] = append(out[role], acct.ID)
			} else {
				problems = append(problems, fmt.Sprintf("role %s: unknown account %q", role, id))
			}
		}
	}

	for _, role := range AllRoles {
		if _, ok := configured[string(role)]; ok {
			continue
		}
		for _, name := range conventionalNames[role] {
			if acct, ok := s.ByName(name); ok {
				out[role] = append(out[role], acct.ID)
			}
		}
		if len(out[role]) == 0 {
			problems = append(problems, fmt.Sprintf("role %s is not bound to any account", role))
		}
	}
	return out, problems
}
