package palette

import "strings"

// Parsed is the result of interpreting input as a command invocation.
type Parsed struct {
	Name     string
	Arg      string
	Explicit bool
}

// Parse attempts to read the input as a command. Without the explicit marker,
// only registered names parse; unrecognised text falls through to the caller's
// media-load path. With the marker, the first token is always treated as a
// command attempt so the caller can report an unknown command.
func (r *Registry) Parse(input string) (Parsed, bool) {
	trimmed := strings.TrimSpace(input)
	explicit := false
	if strings.HasPrefix(trimmed, string(Marker)) {
		explicit = true
		trimmed = strings.TrimSpace(trimmed[1:])
		if trimmed == "" {
			return Parsed{}, false
		}
	}
	if cmd, ok := r.Lookup(trimmed); ok {
		return Parsed{Name: cmd.Name, Explicit: explicit}, true
	}
	name, arg, found := strings.Cut(trimmed, " ")
	if !found {
		if explicit {
			return Parsed{Name: name, Explicit: true}, true
		}
		return Parsed{}, false
	}
	arg = strings.TrimSpace(arg)
	if cmd, ok := r.Lookup(name); ok {
		return Parsed{Name: cmd.Name, Arg: arg, Explicit: explicit}, true
	}
	if explicit {
		return Parsed{Name: name, Arg: arg, Explicit: true}, true
	}
	return Parsed{}, false
}
