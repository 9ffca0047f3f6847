// Package cmd implements a line based command system. Commands are
// registered once, looked up by name or alias and executed on behalf of a
// Source, which receives the Output of the command.
package cmd

import (
	"strings"
)

// Runnable represents a Command that may be run by a Source. The arguments
// passed are the space separated words following the name of the command.
type Runnable interface {
	// Run runs the Command, writing any output to o.
	Run(src Source, args []string, o *Output)
}

// Allower may be implemented by a Runnable to limit the Sources that may run
// it.
type Allower interface {
	// Allow reports if src may run the Runnable.
	Allow(src Source) bool
}

// Command is a command that may be executed by a Source. Use New to create a
// Command.
type Command struct {
	name        string
	description string
	usage       string
	aliases     []string
	r           Runnable
}

// New returns a new Command using the name, description, usage and aliases
// passed. The Runnable r is run when the Command is executed. Usage holds the
// arguments of the command, such as "<x> <y> <z> [height] [width]".
func New(name, description, usage string, aliases []string, r Runnable) Command {
	return Command{
		name:        strings.ToLower(name),
		description: description,
		usage:       usage,
		aliases:     append([]string{strings.ToLower(name)}, aliases...),
		r:           r,
	}
}

// Name returns the name of the Command.
func (cmd Command) Name() string {
	return cmd.name
}

// Description returns the description of the Command.
func (cmd Command) Description() string {
	return cmd.description
}

// Usage returns the usage line of the Command, starting with its name.
func (cmd Command) Usage() string {
	if cmd.usage == "" {
		return "/" + cmd.name
	}
	return "/" + cmd.name + " " + cmd.usage
}

// Aliases returns all aliases of the Command, including its name.
func (cmd Command) Aliases() []string {
	return cmd.aliases
}

// Allowed reports if src may execute the Command.
func (cmd Command) Allowed(src Source) bool {
	if a, ok := cmd.r.(Allower); ok {
		return a.Allow(src)
	}
	return true
}

// Execute executes the Command as a Source with the arguments passed. The
// Output of the Command is sent to the Source.
func (cmd Command) Execute(args string, src Source) {
	o := &Output{}
	defer src.SendCommandOutput(o)

	if !cmd.Allowed(src) {
		o.Errorf(MessagePermission, cmd.name)
		return
	}
	cmd.r.Run(src, strings.Fields(args), o)
}

// Source represents a source of a command execution, such as the console.
type Source interface {
	// Name returns the name of the Source.
	Name() string
	// SendCommandOutput sends the Output of a command to the Source.
	SendCommandOutput(o *Output)
}

// ConsoleSource is a Source that represents the console of the server.
// Commands that only the operator of the server may run check for it in
// Allow, so that a Source cannot gain access by its name alone.
type ConsoleSource interface {
	Source
	// ServerConsole is only implemented by the server console.
	ServerConsole()
}
