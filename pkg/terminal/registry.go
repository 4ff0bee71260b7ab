package terminal

import "strings"

// Registry is the O(1)-average command lookup table, case-folded to
// lowercase at both registration and dispatch time (spec §4.4).
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds or replaces a command entry, folding its name.
func (r *Registry) Register(cmd Command) {
	cmd.Name = strings.ToLower(cmd.Name)
	r.commands[cmd.Name] = cmd
}

// Lookup resolves a command by name, case-folded.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Unregister drops a command. Function definitions do not use it:
// they live in Environment.Functions, which is checked before the
// registry.
func (r *Registry) Unregister(name string) {
	delete(r.commands, strings.ToLower(name))
}

// Names returns every registered command name, for `help`/completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// ByCategory returns every command in the given category.
func (r *Registry) ByCategory(cat Category) []Command {
	var out []Command
	for _, cmd := range r.commands {
		if cmd.Category == cat {
			out = append(out, cmd)
		}
	}
	return out
}
