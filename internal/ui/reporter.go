// Package ui provides generation progress output with two modes: plain
// log-style lines when stdout is not a terminal, and an animated spinner
// for long-running steps (package install) when it is.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Reporter emits progress output during project generation.
type Reporter interface {
	// Step prints a single progress line.
	Step(format string, args ...any)

	// Warn prints a non-fatal warning line.
	Warn(format string, args ...any)

	// Spinner starts an indeterminate spinner for a long-running step.
	Spinner(title string) Spinner
}

// Spinner is a running indeterminate indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// reporter is the concrete Reporter.
type reporter struct {
	writer      io.Writer
	interactive bool
}

// NewReporter creates a Reporter writing to os.Stdout, choosing interactive
// mode from the TTY state of stdout.
func NewReporter() Reporter {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &reporter{writer: os.Stdout, interactive: interactive}
}

// NewHeadlessReporter creates a Reporter that always prints plain lines to w.
func NewHeadlessReporter(w io.Writer) Reporter {
	return &reporter{writer: w, interactive: false}
}

// Step prints a single progress line.
func (r *reporter) Step(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.interactive {
		msg = stepStyle.Render("•") + " " + msg
	} else {
		msg = "• " + msg
	}
	_, _ = fmt.Fprintln(r.writer, msg)
}

// Warn prints a non-fatal warning line.
func (r *reporter) Warn(format string, args ...any) {
	msg := "Warning: " + fmt.Sprintf(format, args...)
	if r.interactive {
		msg = warnStyle.Render(msg)
	}
	_, _ = fmt.Fprintln(r.writer, msg)
}

// Spinner starts a spinner; in headless mode it degrades to a log line.
func (r *reporter) Spinner(title string) Spinner {
	if !r.interactive {
		_, _ = fmt.Fprintln(r.writer, "• "+title)
		return headlessSpinner{writer: r.writer}
	}
	return newInteractiveSpinner(title)
}

// headlessSpinner prints title changes as plain lines.
type headlessSpinner struct {
	writer io.Writer
}

func (s headlessSpinner) SetTitle(title string) {
	_, _ = fmt.Fprintln(s.writer, "• "+title)
}

func (s headlessSpinner) Stop() {}

// spinnerTitleMsg is sent to update the spinner title.
type spinnerTitleMsg string

// spinnerStopMsg is sent to stop the spinner.
type spinnerStopMsg struct{}

// spinnerModel is the bubbletea Model for the animated spinner.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = stepStyle
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner drives the bubbletea program in a goroutine whose
// lifetime is bound to the program's.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(title string) *interactiveSpinner {
	p := tea.NewProgram(newSpinnerModel(title))
	s := &interactiveSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

// SetTitle updates the spinner title.
func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the spinner and waits for the program to exit.
func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}
