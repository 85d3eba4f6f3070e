package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// colorEnabled is resolved once: no color when stdout is not a terminal
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func render(text string, color lipgloss.Color) string {
	if !colorEnabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// ColorBranchName colors a branch name
func ColorBranchName(branchName string) string {
	return render(branchName, lipgloss.Color("12"))
}

// ColorWarn colors warning text yellow
func ColorWarn(text string) string {
	return render(text, lipgloss.Color("3"))
}

// ColorSuccess colors success text green
func ColorSuccess(text string) string {
	return render(text, lipgloss.Color("2"))
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return render(text, lipgloss.Color("8"))
}
