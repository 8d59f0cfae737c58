// Package systems instantiates the long-lived "system" objects a game keeps
// alive across level loads (overlays, clocks and the like).
//
// Systems are described by templates in the game config. A Registry maps
// template names to factories and a Spawner creates, tracks and destroys the
// resulting instances.
package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// System is a live system object.
type System interface {
	// Update advances the system. dt is already time-scaled.
	Update(dt float64)
	Draw(screen *ebiten.Image)
	// Destroy releases anything the system holds.
	Destroy()
}

// Template describes a system to instantiate.
type Template struct {
	Name    string
	Options map[string]string
}

// Factory builds a system from template options.
type Factory func(options map[string]string) (System, error)

// Instance is a system created by a Spawner.
type Instance struct {
	ID       string
	Template string
	System   System
}

// Registry maps template names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spawner creates system instances and keeps the live set.
type Spawner struct {
	registry *Registry
	live     []*Instance
	logger   *log.Logger
}

// NewSpawner creates a spawner backed by registry.
func NewSpawner(registry *Registry, logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.Default()
	}
	return &Spawner{registry: registry, logger: logger}
}

// Instantiate builds a new instance of t.
func (s *Spawner) Instantiate(t Template) (*Instance, error) {
	factory, ok := s.registry.factories[t.Name]
	if !ok {
		return nil, fmt.Errorf("unknown system template %q", t.Name)
	}
	sys, err := factory(t.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to build system %s: %w", t.Name, err)
	}

	inst := &Instance{
		ID:       uuid.NewString(),
		Template: t.Name,
		System:   sys,
	}
	s.live = append(s.live, inst)
	s.logger.Printf("[systems] instantiated %s (%s)", t.Name, inst.ID)
	return inst, nil
}

// Destroy destroys inst if this spawner still tracks it.
func (s *Spawner) Destroy(inst *Instance) {
	for i, live := range s.live {
		if live != inst {
			continue
		}
		s.live = append(s.live[:i:i], s.live[i+1:]...)
		inst.System.Destroy()
		s.logger.Printf("[systems] destroyed %s (%s)", inst.Template, inst.ID)
		return
	}
}

// Live returns the instances that have not been destroyed.
func (s *Spawner) Live() []*Instance {
	return s.live
}

// Update advances every live system.
func (s *Spawner) Update(dt float64) {
	for _, inst := range s.live {
		inst.System.Update(dt)
	}
}

// Draw renders every live system in creation order.
func (s *Spawner) Draw(screen *ebiten.Image) {
	for _, inst := range s.live {
		inst.System.Draw(screen)
	}
}
