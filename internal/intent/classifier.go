// Package intent classifies free-text UI descriptions with a fixed, ordered
// rule table.
package intent

import (
	"strings"

	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

// Intent labels, in evaluation order
const (
	LabelDashboard   = "dashboard"
	LabelTable       = "table"
	LabelForm        = "form"
	LabelNavigation  = "navigation"
	LabelLayout      = "layout"
	LabelInteractive = "interactive"
	LabelData        = "data"
)

// Rule is a labeled predicate over a lowercased description
type Rule struct {
	Label string
	Terms []string          // matches when any term is a substring
	Sets  types.RequestType // empty when the rule does not assign a type
}

func (r Rule) match(lower string) bool {
	for _, term := range r.Terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom. Type assignment overwrites on every
// match, so among the typed rules the last matching one wins.
var rules = []Rule{
	{Label: LabelDashboard, Terms: []string{"dashboard", "analytics", "metrics", "kpi", "overview"}, Sets: types.RequestDashboard},
	{Label: LabelTable, Terms: []string{"table"}, Sets: types.RequestTable},
	{Label: LabelForm, Terms: []string{"form"}, Sets: types.RequestForm},
	{Label: LabelNavigation, Terms: []string{"navigation"}, Sets: types.RequestNavigation},
	{Label: LabelLayout, Terms: []string{"layout", "grid", "flex", "column", "responsive", "stack"}},
	{Label: LabelInteractive, Terms: []string{"button", "click", "modal", "dialog", "interactive", "toggle"}},
	{Label: LabelData, Terms: []string{"data", "chart", "graph", "api", "fetch", "statistic"}},
}

// Rules returns a copy of the rule table in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classification is the outcome of Classify
type Classification struct {
	Type         types.RequestType
	Requirements []string
}

// Classify matches description against the rule table. It never fails: an
// empty or unmatched description yields RequestCustom and no requirements.
func Classify(description string) Classification {
	lower := strings.ToLower(description)
	result := Classification{
		Type:         types.RequestCustom,
		Requirements: []string{},
	}
	for _, r := range rules {
		if !r.match(lower) {
			continue
		}
		result.Requirements = append(result.Requirements, r.Label)
		if r.Sets != "" {
			result.Type = r.Sets
		}
	}
	return result
}

// Request builds a GenerationRequest from a classification
func (c Classification) Request(description string, styling types.StylingHints) types.GenerationRequest {
	reqs := make([]string, len(c.Requirements))
	copy(reqs, c.Requirements)
	return types.GenerationRequest{
		Type:         c.Type,
		Description:  description,
		Requirements: reqs,
		Styling:      styling,
	}
}
