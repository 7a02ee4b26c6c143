package types

// =============================================================================
// CATALOG TYPES
// =============================================================================

// Category groups catalog components. The set is closed.
type Category string

const (
	CategoryElements Category = "elements"
	CategoryForm     Category = "form"
	CategoryLayout   Category = "layout"
	CategoryOverlay  Category = "overlay"
	CategoryData     Category = "data"
	CategoryFeedback Category = "feedback"
)

// Categories lists every category in declaration order
var Categories = []Category{
	CategoryElements,
	CategoryForm,
	CategoryLayout,
	CategoryOverlay,
	CategoryData,
	CategoryFeedback,
}

// Valid reports whether c belongs to the closed category set
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ComponentDescriptor describes one UI component of the catalog
type ComponentDescriptor struct {
	Name              string           `json:"name" yaml:"name"`
	Category          Category         `json:"category" yaml:"category"`
	Description       string           `json:"description" yaml:"description"`
	Props             []PropDescriptor `json:"props,omitempty" yaml:"props,omitempty"`
	Variants          []string         `json:"variants,omitempty" yaml:"variants,omitempty"`
	Examples          []Example        `json:"examples,omitempty" yaml:"examples,omitempty"`
	UseCases          []string         `json:"use_cases,omitempty" yaml:"use_cases,omitempty"`
	RelatedComponents []string         `json:"related_components,omitempty" yaml:"related_components,omitempty"`
	Keywords          []string         `json:"keywords,omitempty" yaml:"keywords,omitempty"` // lowercase suggestion keywords
}

// PropDescriptor describes a single component prop
type PropDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description" yaml:"description"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Example is a titled usage snippet
type Example struct {
	Title string `json:"title" yaml:"title"`
	Code  string `json:"code" yaml:"code"`
}

// =============================================================================
// GENERATION TYPES
// =============================================================================

// RequestType is the detected kind of UI fragment
type RequestType string

const (
	RequestDashboard  RequestType = "dashboard"
	RequestForm       RequestType = "form"
	RequestTable      RequestType = "table"
	RequestNavigation RequestType = "navigation"
	RequestCustom     RequestType = "custom"
)

// StylingHints carries optional presentation preferences
type StylingHints struct {
	Theme       string `json:"theme,omitempty" validate:"omitempty,oneof=light dark auto"`
	Spacing     string `json:"spacing,omitempty" validate:"omitempty,oneof=compact normal spacious"`
	ColorScheme string `json:"colorScheme,omitempty"`
}

// IsZero reports whether no hint is set
func (h StylingHints) IsZero() bool {
	return h.Theme == "" && h.Spacing == "" && h.ColorScheme == ""
}

// GenerationRequest is the normalized request produced by classification
type GenerationRequest struct {
	Type         RequestType  `json:"type"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	Styling      StylingHints `json:"styling,omitempty"`
}

// HasRequirement reports whether label is among the request requirements
func (r GenerationRequest) HasRequirement(label string) bool {
	for _, req := range r.Requirements {
		if req == label {
			return true
		}
	}
	return false
}
