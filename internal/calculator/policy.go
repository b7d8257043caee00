package calculator

import "fmt"

// Policy decides which expenses take part in balance computation.
type Policy string

const (
	// PolicyActive counts only expenses that are not settled. Settled expenses
	// stay in the trip but stop affecting outstanding balances.
	PolicyActive Policy = "active"

	// PolicyFull counts every expense; Settled is informational only.
	PolicyFull Policy = "full"
)

// DefaultPolicy is the ledger policy used when none is configured.
const DefaultPolicy = PolicyActive

// ParsePolicy converts a config value into a Policy. Empty means DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return DefaultPolicy, nil
	case PolicyActive, PolicyFull:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown ledger policy %q (want %q or %q)", s, PolicyActive, PolicyFull)
	}
}

// Includes reports whether the expense counts under this policy.
func (p Policy) Includes(e ExpenseForBalance) bool {
	if p == PolicyFull {
		return true
	}
	return !e.Settled
}
