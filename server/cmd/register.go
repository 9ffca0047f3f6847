package cmd

import (
	"maps"
	"strings"
	"sync"
)

// commands holds a list of registered commands indexed by their name and
// aliases.
var (
	commandsMu sync.RWMutex
	commands   = map[string]Command{}
)

// Register registers a command with its name and all aliases that it has. Any
// command with the same name or aliases will be overwritten.
func Register(command Command) {
	commandsMu.Lock()
	defer commandsMu.Unlock()
	for _, alias := range command.Aliases() {
		commands[alias] = command
	}
}

// ByAlias looks up a command by an alias. If found, the command and true are
// returned. If not, the returned command is nil and the bool is false.
func ByAlias(alias string) (Command, bool) {
	commandsMu.RLock()
	defer commandsMu.RUnlock()
	command, ok := commands[strings.ToLower(alias)]
	return command, ok
}

// Commands returns a map of all registered commands indexed by the alias they
// were registered with.
func Commands() map[string]Command {
	commandsMu.RLock()
	defer commandsMu.RUnlock()
	return maps.Clone(commands)
}
