package digest

import "strings"

// Indent is one unit of indentation used inside elision placeholders and merged fragments.
// Zero Spaces means a tab.
type Indent struct {
	Spaces int
}

// Tabs indents with a single tab.
func Tabs() Indent { return Indent{} }

// Spaces indents with n spaces.
func Spaces(n int) Indent { return Indent{Spaces: n} }

func (i Indent) String() string {
	if i.Spaces <= 0 {
		return "\t"
	}
	return strings.Repeat(" ", i.Spaces)
}

// Apply prefixes every non-empty line of text with one indentation unit. Lines inside
// multi-line string literals are left alone.
func (i Indent) Apply(text string) string {
	unit := i.String()
	lines := strings.Split(text, "\n")
	for n, line := range lines {
		if line != "" && !strings.HasPrefix(line, rawLine) {
			lines[n] = unit + line
		}
	}
	return strings.Join(lines, "\n")
}

// defaultTightKinds are child kinds the elision renderer never puts a space in front of,
// so that "name(args)" is not rendered as "name (args)".
var defaultTightKinds = []string{"parameter_list", "func", "type_parameters", "parameters"}

// Registry maps node kinds to actions for one language.
//
// Build a registry completely before the first parse. After that it is only read and
// can be shared by any number of concurrent Extract calls.
type Registry struct {
	grammar    *Grammar
	indent     Indent
	actions    map[string]Action
	blockKinds map[string]bool
	tightKinds map[string]bool
}

// NewRegistry creates an empty registry for grammar. Body blocks are nodes of kind "block"
// until SetBlockKinds says otherwise.
func NewRegistry(grammar *Grammar, indent Indent) *Registry {
	r := &Registry{
		grammar:    grammar,
		indent:     indent,
		actions:    make(map[string]Action),
		blockKinds: map[string]bool{"block": true},
		tightKinds: make(map[string]bool, len(defaultTightKinds)),
	}
	for _, kind := range defaultTightKinds {
		r.tightKinds[kind] = true
	}
	return r
}

// Register sets the action for kind. A later registration of the same kind replaces the earlier one.
func (r *Registry) Register(kind string, action Action) {
	r.actions[kind] = action
}

// Lookup returns the action for kind, if any.
func (r *Registry) Lookup(kind string) (Action, bool) {
	action, ok := r.actions[kind]
	return action, ok
}

// SetBlockKinds replaces the set of kinds treated as elidable bodies.
func (r *Registry) SetBlockKinds(kinds ...string) {
	r.blockKinds = make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		r.blockKinds[kind] = true
	}
}

// AddTightKinds extends the set of child kinds rendered without a leading space.
func (r *Registry) AddTightKinds(kinds ...string) {
	for _, kind := range kinds {
		r.tightKinds[kind] = true
	}
}

// Grammar returns the grammar the registry's kinds belong to.
func (r *Registry) Grammar() *Grammar { return r.grammar }

// Indent returns the registry's indentation unit.
func (r *Registry) Indent() Indent { return r.indent }

func (r *Registry) isBlock(kind string) bool { return r.blockKinds[kind] }

func (r *Registry) isTight(kind string) bool { return r.tightKinds[kind] }
