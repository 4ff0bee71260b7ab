package terminal

// Environment is the mutable state threaded through interpretation:
// cwd, variables, aliases, bounded history, function bodies, and the
// last exit status (spec §3 Environment).
type Environment struct {
	Cwd        string
	Vars       map[string]string
	Aliases    map[string]string
	Functions  map[string]string
	History    *History
	LastStatus int
}

// NewEnvironment creates a booted environment with a default history
// ring and the documented special variables seeded.
func NewEnvironment(cwd, user, home string) *Environment {
	return &Environment{
		Cwd:       cwd,
		Vars:      map[string]string{"USER": user, "HOME": home},
		Aliases:   make(map[string]string),
		Functions: make(map[string]string),
		History:   NewHistory(defaultHistorySize),
	}
}
