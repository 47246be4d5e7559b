package commands

import (
	"fmt"
)

// Command defines a command loaded from an asset file. Several commands may
// share a handler with different config, which is how aliases such as
// "left" for "go left" are defined.
type Command struct {
	Handler     string         `json:"handler" yaml:"handler"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Usage       string         `json:"usage,omitempty" yaml:"usage,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

func (c *Command) Validate() error {
	if c.Handler == "" {
		return fmt.Errorf("command handler not set")
	}
	return nil
}
