// Package model defines the record threaded through the report pipeline.
package model

import "strings"

// Placeholders substituted when a value cannot be derived or is absent.
const (
	// Undetermined is written by research when the model reply is unusable.
	Undetermined = "Unable to determine"
	// NotAvailable stands in for absent upstream fields inside prompts.
	NotAvailable = "not available"
)

// UseCase is one proposed AI opportunity.
type UseCase struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Impact       string   `json:"impact"`
	Technologies []string `json:"technologies"`
}

// Resource groups search material gathered for one use case.
type Resource struct {
	UseCase              string `json:"use_case"`
	Datasets             string `json:"datasets"`
	ImplementationGuides string `json:"implementation_guides"`
}

// State accumulates the outputs of every stage for one company.
//
// Optional scalars are pointers and optional sequences are nil until their
// owning stage writes them. A non-nil empty slice is a written value.
type State struct {
	CompanyName      string     `json:"company_name"`
	ResearchFindings *string    `json:"research_findings"`
	Industry         *string    `json:"industry"`
	KeyOfferings     []string   `json:"key_offerings"`
	StrategicFocus   []string   `json:"strategic_focus"`
	UseCases         []UseCase  `json:"use_cases"`
	Resources        []Resource `json:"resources"`
	FinalReport      *string    `json:"final_report"`
	Error            string     `json:"error,omitempty"`
}

// NewState seeds an empty state for a company.
func NewState(company string) State {
	return State{CompanyName: company}
}

// IndustryOr returns the industry or def when research has not written one.
func (s State) IndustryOr(def string) string {
	if s.Industry == nil {
		return def
	}
	return *s.Industry
}

// HasUseCases reports whether at least one use case is present.
func (s State) HasUseCases() bool {
	return len(s.UseCases) > 0
}

// HasError reports whether any stage recorded a failure.
func (s State) HasError() bool {
	return s.Error != ""
}

// WithError returns a copy of s with msg appended to the error field.
// Earlier stage errors are preserved.
func (s State) WithError(msg string) State {
	if msg == "" {
		return s
	}
	if s.Error == "" {
		s.Error = msg
	} else {
		s.Error = s.Error + "; " + msg
	}
	return s
}

// JoinOr joins items with ", " or returns def for an empty sequence.
func JoinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
