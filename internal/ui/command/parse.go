package command

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a palette command.
type Kind int

const (
	Add Kind = iota + 1
	Grid
	Theme
	Quit
)

// Command is a parsed palette line.
type Command struct {
	Kind Kind
	Arg  string
}

// ErrUnknownCommand is wrapped by Parse when the first word names no
// command.
var ErrUnknownCommand = errors.New("unknown command")

// ErrMissingName is returned by Parse for an add without a task name.
var ErrMissingName = errors.New("add: missing task name")

// Usage describes one palette command for the help overlay.
type Usage struct {
	Syntax string
	Desc   string
}

// Usages lists the palette commands in the order Parse checks them.
func Usages() []Usage {
	return []Usage{
		{":add <name>", "append a todo (alias :a)"},
		{":grid", "switch between list and grid (alias :g)"},
		{":theme [name]", "next theme, or the named one"},
		{":quit", "leave dragtodo (alias :q)"},
	}
}

// Parse reads a palette line such as "add Buy milk" or "theme dark".
// The argument keeps its inner spacing.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "add", "a":
		if arg == "" {
			return Command{}, ErrMissingName
		}
		return Command{Kind: Add, Arg: arg}, nil
	case "grid", "g":
		return Command{Kind: Grid}, nil
	case "theme":
		return Command{Kind: Theme, Arg: arg}, nil
	case "quit", "q":
		return Command{Kind: Quit}, nil
	}
	return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
}
