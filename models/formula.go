package models

// FormulaCategory tags a formula entry with its documentation section
type FormulaCategory string

const (
	CategoryMath      FormulaCategory = "math"
	CategoryString    FormulaCategory = "string"
	CategoryDate      FormulaCategory = "date"
	CategoryAggregate FormulaCategory = "aggregate"
	CategoryLogical   FormulaCategory = "logical"
	CategoryWindow    FormulaCategory = "window"
	CategoryArray     FormulaCategory = "array"
)

// FormulaEntry is one static catalog record describing a DataLens formula.
// Entries are loaded once at process start and never mutated.
type FormulaEntry struct {
	// Name is the unique uppercase function identifier (e.g. "ROUND")
	Name string `json:"name"`

	// Syntax is the display form shown to the user
	Syntax string `json:"syntax"`

	// Description is the free-text documentation excerpt
	Description string `json:"description"`

	// Category groups the entry in the catalog
	Category FormulaCategory `json:"category"`

	// Keywords are lowercase search tokens associated with the entry
	Keywords []string `json:"keywords"`
}
