// Package schema holds the closed sets of valid transaction types and
// categories plus the canonical date format. The sets are fixed for the
// process lifetime; every other component validates against them.
package schema

import (
	"regexp"
	"time"
)

const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"

	// FallbackType and FallbackCategory are substituted when the extracted
	// value is missing or not a member of the corresponding set.
	FallbackType     = TypeExpense
	FallbackCategory = "Other"

	// DateLayout is the canonical date format for drafts.
	DateLayout = "2006-01-02"
)

var types = map[string]bool{
	TypeIncome:  true,
	TypeExpense: true,
}

var categories = []string{
	"Food",
	"Transport",
	"Shopping",
	"Utilities",
	"Rent",
	"Salary",
	"Gift",
	"Entertainment",
	"Healthcare",
	"Education",
	"Other",
	"Mahar Unity",
	"Bavin",
}

// Select options in the target database are case-sensitive, so membership
// checks are exact-match.
var categorySet = func() map[string]bool {
	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return set
}()

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidType reports whether s is a member of the transaction type set.
func ValidType(s string) bool {
	return types[s]
}

// ValidCategory reports whether s is a member of the category set.
func ValidCategory(s string) bool {
	return categorySet[s]
}

// ValidDate reports whether s matches the required YYYY-MM-DD pattern.
// Validation is format-only: a syntactically matching but calendrically
// invalid date (e.g. month 13) is accepted.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// Types returns a copy of the valid transaction types.
func Types() []string {
	return []string{TypeIncome, TypeExpense}
}

// Categories returns a copy of the valid category names.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Today formats now as a draft date in its own location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
