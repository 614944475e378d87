package projection

import (
	"fmt"
	"strings"

	"github.com/agrifaas/farmledger/internal/model"
)

// Class is where an expense account's movement goes in the base-year income
// statement.
type Class string

const (
	ClassCOGS         Class = "cogs"
	ClassSGA          Class = "sga"
	ClassDepreciation Class = "depreciation"
	ClassInterest     Class = "interest"
	ClassTax          Class = "tax"
)

// ParseClass validates a classification value.
func ParseClass(s string) (Class, error) {
	switch c := Class(strings.ToLower(strings.TrimSpace(s))); c {
	case ClassCOGS, ClassSGA, ClassDepreciation, ClassInterest, ClassTax:
		return c, nil
	}
	return "", fmt.Errorf("unknown expense class %q (want cogs, sga, depreciation, interest or tax)", s)
}

// DefaultCOGSKeywords mark direct farm input costs.
var DefaultCOGSKeywords = []string{
	"seed",
	"fertili",
	"manure",
	"crop protection",
	"chemical",
	"pesticide",
	"herbicide",
	"feed",
	"veterinary",
	"casual labor",
	"casual labour",
	"harvest",
	"packaging",
	"irrigation",
	"cost of sales",
	"cost of goods",
}

// Classifier assigns expense accounts to a Class. Accounts listed in Table
// use that class; the rest are matched on their name.
type Classifier struct {
	Table        map[string]Class
	COGSKeywords []string
}

// NewClassifier builds a Classifier from configured values. Unknown classes
// are reported and skipped. Nil keywords select DefaultCOGSKeywords.
func NewClassifier(table map[string]string, cogsKeywords []string) (Classifier, error) {
	c := Classifier{Table: make(map[string]Class, len(table)), COGSKeywords: cogsKeywords}
	if c.COGSKeywords == nil {
		c.COGSKeywords = DefaultCOGSKeywords
	}
	var errs []string
	for id, v := range table {
		class, err := ParseClass(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("account %s: %v", id, err))
			continue
		}
		c.Table[id] = class
	}
	if len(errs) > 0 {
		return c, fmt.Errorf("classification: %s", strings.Join(errs, "; "))
	}
	return c, nil
}

// Classify returns the class of an expense account.
func (c Classifier) Classify(a model.Account) Class {
	if class, ok := c.Table[a.ID]; ok {
		return class
	}
	name := strings.ToLower(a.Name)
	switch {
	case strings.Contains(name, "depreciation"), strings.Contains(name, "amortization"):
		return ClassDepreciation
	case strings.Contains(name, "interest"):
		return ClassInterest
	case strings.Contains(name, "income tax"), name == "tax", strings.HasPrefix(name, "tax "):
		return ClassTax
	}
	for _, kw := range c.COGSKeywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			return ClassCOGS
		}
	}
	return ClassSGA
}
