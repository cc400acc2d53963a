package main

import (
	"fmt"

	"github.com/osokin/leadscout"
)

// Run executes the prompt get command.
func (c *PromptGetCmd) Run(deps *Dependencies) error {
	text, err := deps.Prompts.Get(c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, text)
	return nil
}

// Run executes the prompt set command.
func (c *PromptSetCmd) Run(deps *Dependencies) error {
	if _, err := deps.Prompts.Update(c.Name, c.Text); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Updated prompt %q\n", c.Name)
	return nil
}

// Run executes the prompt reset command.
func (c *PromptResetCmd) Run(deps *Dependencies) error {
	if _, err := deps.Prompts.Reset(c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Reset prompt %q to its default\n", c.Name)
	return nil
}
