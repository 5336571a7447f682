package calc

// Namespace is a fixed set of named constants and functions that expressions
// may refer to. It is the only thing an expression can reach. A Namespace
// cannot be modified after it is created, so it is safe for concurrent use.
type Namespace struct {
	entries map[string]Entry
	names   []string
}

// Entry is a constant or function in a Namespace.
type Entry struct {
	// Name is the identifier expressions use for the entry.
	Name string
	// Value is the value of a constant.
	Value float64
	// Func is the function, or nil if the entry is a constant.
	Func Func
}

// IsFunc returns whether the entry is a function.
func (e Entry) IsFunc() bool {
	return e.Func != nil
}

// Const creates a constant entry.
func Const(name string, v float64) Entry {
	return Entry{Name: name, Value: v}
}

// Function creates a function entry.
func Function(name string, fn Func) Entry {
	return Entry{Name: name, Func: fn}
}

// NewNamespace creates a namespace holding the given entries. If two entries
// share a name, the later one wins.
func NewNamespace(entries ...Entry) *Namespace {
	ns := Namespace{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, ok := ns.entries[e.Name]; !ok {
			ns.names = append(ns.names, e.Name)
		}
		ns.entries[e.Name] = e
	}
	sortstrs(ns.names)
	return &ns
}

// Lookup finds the entry for a name.
func (ns *Namespace) Lookup(name string) (Entry, bool) {
	e, ok := ns.entries[name]
	return e, ok
}

// Names returns the names in the namespace, sorted.
func (ns *Namespace) Names() []string {
	return append(([]string)(nil), ns.names...)
}
