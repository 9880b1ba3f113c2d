package scene

import (
	"strings"
	"sync"

	"github.com/animsmith/animsmith/internal/model"
)

// Memory is an in-memory scene table. It exists for the local server and
// for tests; lookups are by exact object name.
type Memory struct {
	mu      sync.Mutex
	objects map[string]*Object
}

var _ Resolver = (*Memory)(nil)

// NewMemory returns an empty in-memory scene.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]*Object)}
}

// Register adds an object with the given name, returning the handle.
// Registering an existing name returns the existing object.
func (m *Memory) Register(name string) *Object {
	m.mu.Lock()
	defer m.mu.Unlock()
	if obj, ok := m.objects[name]; ok {
		return obj
	}
	obj := &Object{Name: name, Components: make(map[string]bool)}
	m.objects[name] = obj
	return obj
}

func (m *Memory) FindObject(name string) (*Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[name]
	return obj, ok
}

func (m *Memory) EnsureComponent(obj *Object, component string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj.Components[component] = true
}

func (m *Memory) SetController(obj *Object, controllerPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj.Controller = controllerPath
}

// AliasResolver resolves component kinds through an alias table layered
// over the builtin names. It answers the secondary lookup for spellings the
// fixed table does not know.
type AliasResolver struct {
	aliases map[string]model.ComponentKind
}

var _ TypeResolver = (*AliasResolver)(nil)

// NewAliasResolver returns a resolver preloaded with common component
// aliases.
func NewAliasResolver() *AliasResolver {
	return &AliasResolver{aliases: map[string]model.ComponentKind{
		"renderer":            model.KindMeshRenderer,
		"skinnedmeshrenderer": model.KindMeshRenderer,
		"spotlight":           model.KindLight,
		"pointlight":          model.KindLight,
		"directionallight":    model.KindLight,
		"maincamera":          model.KindCamera,
	}}
}

func (r *AliasResolver) ResolveByName(name string) (model.ComponentKind, bool) {
	kind, ok := r.aliases[strings.ToLower(name)]
	return kind, ok
}
