package workflow

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Confirmer gates dangerous operations in paranoid mode
type Confirmer interface {
	// Confirm asks the operator to approve an operation.
	// Returning false means the operation is declined.
	Confirm(prompt string) (bool, error)
}

// surveyConfirmer asks yes/no questions on the terminal, defaulting to No
type surveyConfirmer struct{}

// NewConfirmer returns the interactive Confirmer used by the CLI
func NewConfirmer() Confirmer {
	return &surveyConfirmer{}
}

func (surveyConfirmer) Confirm(prompt string) (bool, error) {
	// A prompt that cannot be answered is a decline, not a hang
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, nil
	}

	answer := false
	question := &survey.Confirm{
		Message: prompt,
		Default: false,
	}
	if err := survey.AskOne(question, &answer); err != nil {
		// Ctrl+C or a closed terminal counts as a decline
		return false, nil
	}
	return answer, nil
}
