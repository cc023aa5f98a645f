package ui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user leaves a prompt with esc or ctrl+c.
var ErrCancelled = errors.New("cancelled")

// interceptedKey tracks the last key that triggered an abort (esc vs ctrl+c).
var interceptedKey string

func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")
	km.Confirm.Submit.SetHelp("enter", "confirm • esc/ctrl+c: cancel")
	return km
}

// promptFilter is a Bubble Tea filter recording which key aborted the form.
func promptFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			interceptedKey = "esc"
		case tea.KeyCtrlC:
			interceptedKey = "ctrl+c"
		}
	}
	return msg
}

// RunForm runs a huh form on stderr with the key filter installed.
func RunForm(f *huh.Form) error {
	interceptedKey = ""
	err := f.WithTheme(huh.ThemeCatppuccin()).
		WithKeyMap(keyMap()).
		WithProgramOptions(tea.WithFilter(promptFilter), tea.WithOutput(os.Stderr)).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		if logger != nil {
			logger.Debug("Prompt aborted", "key", interceptedKey)
		}
		return ErrCancelled
	}
	return err
}

// Confirm asks a yes/no question. Default is no.
func Confirm(title, description string) (bool, error) {
	ok := false
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Rename").
				Negative("Cancel").
				Value(&ok),
		),
	))
	if err != nil {
		return false, err
	}
	return ok, nil
}
