package runtime

import (
	"fmt"
	"sort"
)

// Environment provides lexical scoping for Lox runtime values. Scopes chain
// through parent pointers; closures keep captured environments alive through
// ordinary shared references, so mutually-referencing scope graphs are safe
// under the garbage collector.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or overwrites a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the innermost scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// Ancestor walks exactly distance parent links from this scope.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads a binding from the scope exactly distance links out, never
// searching further. The resolver guarantees the binding lives there.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	if v, ok := e.Ancestor(distance).values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// AssignAt writes a binding in the scope exactly distance links out, never
// searching further.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	scope := e.Ancestor(distance)
	if _, ok := scope.values[name]; !ok {
		return fmt.Errorf("Undefined variable '%s'.", name)
	}
	scope.values[name] = value
	return nil
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
