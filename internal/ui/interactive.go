package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/x/term"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// IsAbort reports whether err came from the user cancelling a prompt.
func IsAbort(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, huh.ErrUserAborted)
}

// NormalizeAbort maps huh's abort error to ErrAborted and passes anything
// else through.
func NormalizeAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Confirm asks a yes/no question.
func Confirm(title, description string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}

// RunWithSpinner runs fn behind a spinner when attached to a terminal and
// plainly otherwise. It returns fn's error.
func RunWithSpinner(title string, fn func() error) error {
	if !IsInteractive() {
		return fn()
	}

	var fnErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			fnErr = fn()
		}).
		Run()
	if err != nil {
		return NormalizeAbort(err)
	}
	return fnErr
}
