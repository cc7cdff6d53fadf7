package main

import (
	"fmt"
	"sort"
)

const (
	defaultAPIURL  = "http://localhost:8080"
	envAPIURL      = "API_URL"
	envAPIKey      = "API_KEY"
	exitOK         = 0
	exitFailure    = 1
	exitUsageError = 2
)

// Command interface that all devtool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
	ui       *UI
}

// NewRegistry creates a new command registry writing to stdout
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		ui:       stdoutUI,
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// Execute runs the command named by args[0] and returns the process exit code
func (r *Registry) Execute(args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return exitUsageError
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		r.ui.Error("Unknown command: %s", args[0])
		r.PrintHelp()
		return exitUsageError
	}

	if err := cmd.Run(args[1:]); err != nil {
		r.ui.Error("%s failed: %v", cmd.Name(), err)
		return exitFailure
	}
	return exitOK
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Fprintf(r.ui.out, "Usage: devtool <command> [args...]\n")
	fmt.Fprintf(r.ui.out, "\nAvailable Commands:\n")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Fprintf(r.ui.out, "  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}
