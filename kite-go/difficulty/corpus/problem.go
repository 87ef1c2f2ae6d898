package corpus

import "strings"

// Problem is the raw statement of a competitive-programming problem. Any
// field may be empty.
type Problem struct {
	Title             string `json:"title,omitempty"`
	Description       string `json:"description"`
	InputDescription  string `json:"input_description"`
	OutputDescription string `json:"output_description"`
}

// Text is the feature text of the problem: description, input and output
// joined by single spaces. The title is not part of it.
func (p Problem) Text() string {
	return p.Description + " " + p.InputDescription + " " + p.OutputDescription
}

// Empty is true when description, input and output are all blank.
func (p Problem) Empty() bool {
	return strings.TrimSpace(p.Description) == "" &&
		strings.TrimSpace(p.InputDescription) == "" &&
		strings.TrimSpace(p.OutputDescription) == ""
}

// Example is a problem labeled with its difficulty score and tier.
type Example struct {
	Problem Problem
	Score   float64
	Tier    string
}
