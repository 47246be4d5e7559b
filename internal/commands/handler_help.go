package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-hotelvisit/internal/display"
	"github.com/pixil98/go-hotelvisit/internal/storage"
)

// HelpHandlerFactory creates handlers that display command help.
type HelpHandlerFactory struct {
	commands storage.Storer[*Command]
}

// NewHelpHandlerFactory creates a new HelpHandlerFactory.
func NewHelpHandlerFactory(commands storage.Storer[*Command]) *HelpHandlerFactory {
	return &HelpHandlerFactory{commands: commands}
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if len(cmdCtx.Args) > 0 {
			return f.showCommand(cmdCtx.Session, cmdCtx.Args[0])
		}
		return f.listCommands(cmdCtx.Session)
	}, nil
}

// listCommands displays all commands grouped by category.
func (f *HelpHandlerFactory) listCommands(s Session) error {
	groups := make(map[string][]string)
	for id, cmd := range f.commands.GetAll() {
		category := cmd.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], string(id))
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	lines := []string{"Available commands:"}
	for _, cat := range categories {
		cmds := groups[cat]
		sort.Strings(cmds)
		lines = append(lines, fmt.Sprintf("  %s: %s", display.Capitalize(cat), strings.Join(cmds, ", ")))
	}

	return s.WriteLine(strings.Join(lines, "\n"))
}

// showCommand displays detailed help for a specific command.
func (f *HelpHandlerFactory) showCommand(s Session, name string) error {
	name = strings.ToLower(name)
	cmd := f.commands.Get(name)
	if cmd == nil {
		return NewUserErrorf("Command %q is unknown.", name)
	}

	lines := []string{fmt.Sprintf("%s: %s", name, cmd.Description)}
	if cmd.Usage != "" {
		lines = append(lines, fmt.Sprintf("Usage: %s", cmd.Usage))
	}

	return s.WriteLine(strings.Join(lines, "\n"))
}
