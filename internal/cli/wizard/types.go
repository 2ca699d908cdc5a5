// Package wizard provides the interactive selection flow for project
// creation, built on huh forms. It produces raw answers only; validation
// belongs to the config resolver.
package wizard

import "errors"

// Result holds the user's selections from the create wizard.
type Result struct {
	ProjectName string // Project name (required)
	ProjectType string // nextjs, expo, tauri, flutter
	Template    string // Template id within the chosen type

	// Feature selections; "none" means skipped.
	Database   string
	ORM        string
	Storage    string
	Auth       string
	Deployment string

	PackageManager string
	Monorepo       bool
	Install        bool
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no question.
	QuestionTypeConfirm
)

// Question defines a single wizard question.
type Question struct {
	ID          string       // Unique identifier
	Type        QuestionType // Select, Input, or Confirm
	Title       string       // Question title
	Description string       // Additional description

	// Options for select questions. OptionsFunc takes precedence and sees
	// the answers gathered so far, for choices that depend on earlier ones.
	Options     []Option
	OptionsFunc func(*Result) []Option

	// Default value ("true"/"false" for confirms). DefaultFunc wins when set.
	Default     string
	DefaultFunc func(*Result) string

	// Condition gates whether the question is asked at all.
	Condition func(*Result) bool

	// Apply records the answer on the result.
	Apply func(*Result, string)
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user aborts the wizard.
	ErrCancelled = errors.New("wizard: cancelled by user")

	// ErrNoQuestions is returned when Run is given an empty question set.
	ErrNoQuestions = errors.New("wizard: no questions to ask")
)
