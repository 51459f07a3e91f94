package cmd

import (
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/textinput"
)

// PromptText asks for a single line of input. validate runs on every
// keystroke and blocks submission while it returns an error.
var PromptText = func(prompt, placeholder string, validate func(string) error) (string, error) {
	input := textinput.New(prompt)
	input.Placeholder = placeholder
	input.Validate = validate
	return input.RunPrompt()
}

// Confirm asks a yes/no question, defaulting to no.
var Confirm = func(question string) (bool, error) {
	input := confirmation.New(question, confirmation.No)
	return input.RunPrompt()
}
