package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// Run executes the wizard and returns the gathered answers. Each question
// runs as its own independent huh.Form so later questions can build their
// options from earlier answers.
func Run(questions []Question) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &Result{}

	for i := range questions {
		q := &questions[i]

		if q.Condition != nil && !q.Condition(result) {
			continue
		}

		answer, err := ask(q, result)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard question %q: %w", q.ID, err)
		}
		if q.Apply != nil {
			q.Apply(result, answer)
		}
	}

	return result, nil
}

// ask runs a single question as its own form and returns the raw answer.
func ask(q *Question, result *Result) (string, error) {
	def := q.Default
	if q.DefaultFunc != nil {
		def = q.DefaultFunc(result)
	}

	switch q.Type {
	case QuestionTypeSelect:
		options := q.Options
		if q.OptionsFunc != nil {
			options = q.OptionsFunc(result)
		}
		selected := def
		huhOpts := make([]huh.Option[string], len(options))
		for i, opt := range options {
			huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
		}
		field := huh.NewSelect[string]().
			Title(q.Title).
			Description(q.Description).
			Options(huhOpts...).
			Value(&selected)
		if err := runField(field); err != nil {
			return "", err
		}
		return selected, nil

	case QuestionTypeInput:
		value := def
		field := huh.NewInput().
			Title(q.Title).
			Description(q.Description).
			Value(&value)
		if err := runField(field); err != nil {
			return "", err
		}
		if value == "" {
			value = def
		}
		return value, nil

	case QuestionTypeConfirm:
		confirmed := def == "true"
		field := huh.NewConfirm().
			Title(q.Title).
			Description(q.Description).
			Value(&confirmed)
		if err := runField(field); err != nil {
			return "", err
		}
		if confirmed {
			return "true", nil
		}
		return "false", nil

	default:
		return "", fmt.Errorf("unknown question type %d", q.Type)
	}
}

// runField wraps a single field in its own form and runs it.
func runField(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).Run()
}
