// Package modes is the catalog of animation modes the controller firmware knows.
package modes

import "strings"

// Category separates built-in animations from the custom pixel modes.
type Category string

const (
	BuiltIn Category = "Built-in"
	Custom  Category = "Custom"
)

// Mode is one entry of the catalog.
type Mode struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Builtin returns the built-in modes ordered by id.
func Builtin() []Mode {
	return list(builtinNames[:], BuiltIn)
}

// CustomModes returns the custom modes ordered by id.
func CustomModes() []Mode {
	return list(customNames[:], Custom)
}

// Lookup returns the mode with id in category.
func Lookup(category Category, id int) (Mode, bool) {
	var names []string
	switch category {
	case BuiltIn:
		names = builtinNames[:]
	case Custom:
		names = customNames[:]
	default:
		return Mode{}, false
	}
	if id < 0 || id >= len(names) {
		return Mode{}, false
	}
	return Mode{ID: id, Name: names[id], Category: category}, true
}

// Search returns the modes whose name contains query, ignoring case. An empty
// query matches everything. With neither builtIn nor custom set both
// categories are searched; built-in modes come first.
func Search(query string, builtIn, custom bool) []Mode {
	if !builtIn && !custom {
		builtIn, custom = true, true
	}

	var candidates []Mode
	if builtIn {
		candidates = append(candidates, Builtin()...)
	}
	if custom {
		candidates = append(candidates, CustomModes()...)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return candidates
	}

	var out []Mode
	for _, m := range candidates {
		if strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, m)
		}
	}
	return out
}

func list(names []string, category Category) []Mode {
	out := make([]Mode, len(names))
	for i, name := range names {
		out[i] = Mode{ID: i, Name: name, Category: category}
	}
	return out
}
