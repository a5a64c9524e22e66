package rich

import (
	"reflect"
	"sync"
)

// Registry binds domain type names to their registered value shapes. Each
// domain type registers its descriptor once; projections and declaration
// checks are derived from the registered shape. A Registry is safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	shapes map[string]Shape
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{shapes: make(map[string]Shape)}
}

// Register binds name to shape. Re-registering the same shape is a no-op;
// binding a different shape to an existing name is rejected.
func (r *Registry) Register(name string, shape Shape) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.shapes[name]; ok {
		if reflect.DeepEqual(prev, shape) {
			return nil
		}
		return singleIssue(CodeMetaShape, "shape for "+name+" already registered with a different layout")
	}
	r.shapes[name] = shape
	return nil
}

// Lookup returns the shape registered for name.
func (r *Registry) Lookup(name string) (Shape, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shapes[name]
	return s, ok
}

// Project returns the projected metadata shape for a registered name.
func (r *Registry) Project(name string) (MetaShape, bool) {
	s, ok := r.Lookup(name)
	if !ok {
		return MetaShape{}, false
	}
	return Project(s), true
}

// CheckBinding validates that rt is a conforming metadata declaration for
// the shape registered under name.
func (r *Registry) CheckBinding(name string, rt reflect.Type) error {
	s, ok := r.Lookup(name)
	if !ok {
		return singleIssue(CodeMetaShape, "no shape registered for "+name)
	}
	return CheckMetaDecl(s, rt)
}

// defaultRegistry backs the package-level registration helpers.
var defaultRegistry = NewRegistry()

// RegisterShape binds a domain type name to its shape in the default
// registry.
func RegisterShape(name string, shape Shape) error { return defaultRegistry.Register(name, shape) }

// LookupShape reads the default registry.
func LookupShape(name string) (Shape, bool) { return defaultRegistry.Lookup(name) }

// CheckShapeBinding validates a metadata declaration against the default
// registry.
func CheckShapeBinding(name string, rt reflect.Type) error {
	return defaultRegistry.CheckBinding(name, rt)
}
