package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errPasswordRequired = errors.New("parent password required: pass --password or run in a terminal")

func sproutHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validatePassword(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("password cannot be empty")
	}
	return nil
}

// passwordForm returns a single masked input bound to value.
func passwordForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(value).
				Validate(validatePassword),
		),
	).WithTheme(sproutHuhTheme()).WithShowHelp(false)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// password returns flagValue when set, otherwise prompts when interactive.
func (a *App) password(flagValue, title string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if !a.interactive() {
		return "", errPasswordRequired
	}
	if a.PromptPassword != nil {
		return a.PromptPassword(title)
	}
	var pw string
	if err := passwordForm(title, &pw).Run(); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return pw, nil
}

// requireParent verifies the parent password when one is configured.
func (a *App) requireParent(flagValue string) error {
	if !a.Store.HasParentPassword() {
		return nil
	}
	pw, err := a.password(flagValue, "Parent password")
	if err != nil {
		return err
	}
	return a.Store.VerifyParentPassword(pw)
}

func addPasswordFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "password", "", "Parent password (prompted when omitted in a terminal)")
}
