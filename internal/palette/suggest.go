package palette

import (
	"strings"
	"unicode"
)

// Context captures what the suggestion engine should complete, derived fresh
// from the text buffer and caret on every keystroke. Span offsets are in
// runes.
type Context struct {
	Query      string
	Command    string
	Start      int
	Length     int
	IsArgument bool
	Explicit   bool
}

// SuggestionContext derives the completion context for the current buffer.
// Suggestions are only offered while the caret sits at the end of the text;
// there is no mid-string completion.
func (r *Registry) SuggestionContext(text string, caret int) (Context, bool) {
	runes := []rune(text)
	if caret != len(runes) {
		return Context{}, false
	}
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	explicit := i < len(runes) && runes[i] == Marker
	if explicit {
		i++
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i == len(runes) {
			// Bare marker: suggest every command.
			return Context{Start: len(runes), Explicit: true}, true
		}
	}
	if i == len(runes) {
		return Context{}, false
	}
	rest := runes[i:]
	spaceAt := -1
	for j, r := range rest {
		if unicode.IsSpace(r) {
			spaceAt = j
			break
		}
	}
	if spaceAt < 0 {
		token := string(rest)
		if !explicit && !strings.ContainsRune(token, Marker) && !r.hasPrefixMatch(token) {
			return Context{}, false
		}
		return Context{
			Query:    token,
			Start:    i,
			Length:   len(rest),
			Explicit: explicit,
		}, true
	}
	command := string(rest[:spaceAt])
	if cmd, ok := r.Lookup(command); ok {
		command = cmd.Name
	}
	start := len(runes)
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return Context{
		Query:      string(runes[start:]),
		Command:    command,
		Start:      start,
		Length:     len(runes) - start,
		IsArgument: true,
		Explicit:   explicit,
	}, true
}

// Matches returns the ranked suggestions for a context. A command-name query
// containing the marker anywhere returns every registered name.
func (r *Registry) Matches(ctx Context) []string {
	if ctx.IsArgument {
		cmd, ok := r.Lookup(ctx.Command)
		if !ok {
			return nil
		}
		return prefixMatches(cmd.Options, ctx.Query)
	}
	if strings.ContainsRune(ctx.Query, Marker) {
		return r.Names()
	}
	matches := prefixMatches(r.names, ctx.Query)
	if len(matches) == 0 && ctx.Explicit && ctx.Query == "" {
		return r.Names()
	}
	return matches
}

func prefixMatches(candidates []string, query string) []string {
	lower := strings.ToLower(query)
	matches := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.HasPrefix(strings.ToLower(candidate), lower) {
			matches = append(matches, candidate)
		}
	}
	return matches
}

// Accept replaces the matched span with the chosen suggestion and returns the
// updated text plus the caret position just past the insertion. Characters
// outside the span are untouched.
func Accept(text string, ctx Context, choice string) (string, int) {
	runes := []rune(text)
	start := ctx.Start
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	end := start + ctx.Length
	if end > len(runes) {
		end = len(runes)
	}
	inserted := []rune(choice)
	updated := make([]rune, 0, len(runes)-(end-start)+len(inserted))
	updated = append(updated, runes[:start]...)
	updated = append(updated, inserted...)
	updated = append(updated, runes[end:]...)
	return string(updated), start + len(inserted)
}
