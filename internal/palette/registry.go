// Package palette implements the command-line layer of the host's single
// input field: a fixed command registry, a parser that disambiguates commands
// from media identifiers, and the autocomplete engine that backs the
// suggestion overlay.
package palette

import "strings"

// Marker is the leading character that forces command-mode interpretation of
// the input field.
const Marker = '>'

// Command describes a registry entry: a name plus its ordered argument
// options.
type Command struct {
	Name    string
	Options []string
}

// Registry is the fixed, case-insensitively keyed command set.
type Registry struct {
	names  []string
	byName map[string]Command
}

// NewRegistry builds a registry from the supplied commands. Names are unique
// case-insensitively; later duplicates are dropped.
func NewRegistry(commands ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(commands))}
	for _, cmd := range commands {
		key := strings.ToLower(cmd.Name)
		if key == "" {
			continue
		}
		if _, exists := r.byName[key]; exists {
			continue
		}
		r.byName[key] = cmd
		r.names = append(r.names, cmd.Name)
	}
	return r
}

// Default returns the host's command set.
func Default() *Registry {
	return NewRegistry(
		Command{Name: "open", Options: []string{"recent"}},
		Command{Name: "save", Options: []string{"as"}},
		Command{Name: "play"},
		Command{Name: "pause"},
		Command{Name: "seek", Options: []string{"back", "forward"}},
		Command{Name: "opacity", Options: []string{"25", "50", "75", "100"}},
		Command{Name: "volume", Options: []string{"0", "25", "50", "75", "100"}},
		Command{Name: "media", Options: []string{"recent"}},
		Command{Name: "quit"},
	)
}

// Lookup resolves a name case-insensitively.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// hasPrefixMatch reports whether any registered name starts with the query.
func (r *Registry) hasPrefixMatch(query string) bool {
	lower := strings.ToLower(query)
	for _, name := range r.names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return true
		}
	}
	return false
}
