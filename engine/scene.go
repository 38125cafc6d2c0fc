package engine

import (
	"fmt"
	"iter"
	"maps"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/ui"
)

// Callback is a named action a UI document can bind to.
type Callback func(ctx *Context)

// Scene is a named collection of entities with its own physics world, UI
// program, callbacks and data map.
//
// A registered scene is a template: everything registered on it is recorded,
// and each activation instantiates a fresh copy from that record. Handles
// returned while building stay valid in every instance because the replay
// inserts in the same order into a world with the same tag.
type Scene struct {
	name     string
	tag      uint16
	settings physics.Settings
	parser   ui.Parser

	world    *physics.World
	entities []*Entity
	index    *intmap.Map[EntityID, *Entity]
	nextID   EntityID

	ui        *ui.Document
	callbacks map[string]Callback
	data      map[string]string

	records []*Builder
}

func newScene(name string, tag uint16, settings physics.Settings, parser ui.Parser) *Scene {
	return &Scene{
		name:      name,
		tag:       tag,
		settings:  settings,
		parser:    parser,
		world:     physics.New(tag, settings),
		index:     intmap.New[EntityID, *Entity](64),
		callbacks: make(map[string]Callback),
		data:      make(map[string]string),
	}
}

func (s *Scene) Name() string {
	return s.name
}

// World returns the scene's physics world.
func (s *Scene) World() *physics.World {
	return s.world
}

// UI returns the attached UI document, or nil.
func (s *Scene) UI() *ui.Document {
	return s.ui
}

// RegisterGameObject builds an entity from b and appends it to the scene.
// The body is inserted first so the collider can be parented to it; the
// collider carries the entity id as user data.
func (s *Scene) RegisterGameObject(b *Builder) *Entity {
	rec := b.snapshot()
	s.records = append(s.records, rec)

	id := s.nextID
	entity := &Entity{
		id:        id,
		position:  rec.position,
		graphics:  rec.graphics,
		behaviors: slices.Clone(rec.behaviors),
	}

	if rec.body != nil {
		desc := *rec.body
		if desc.Translation == (mgl32.Vec2{}) {
			desc.Translation = s.world.ToPhysics(rec.position)
		}
		entity.body = s.world.InsertBody(desc)
		entity.position = s.world.ToScreen(desc.Translation)
	}

	if rec.collider != nil {
		if entity.body.IsValid() {
			h, err := s.world.InsertColliderWithParent(*rec.collider, uint64(id), entity.body)
			if err != nil {
				panic(fmt.Sprintf("insert collider for entity %d: %v", id, err))
			}
			entity.collider = h
		} else {
			entity.collider = s.world.InsertCollider(*rec.collider, uint64(id))
		}
	}

	s.entities = append(s.entities, entity)
	s.index.Put(id, entity)
	s.nextID++
	return entity
}

// RegisterUI parses the UI document at path and attaches it.
func (s *Scene) RegisterUI(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &ui.MalformedSceneAssetError{Asset: path, Err: err}
	}
	return s.RegisterUISource(path, src)
}

// RegisterUISource parses src and attaches it. name identifies the asset in
// errors.
func (s *Scene) RegisterUISource(name string, src []byte) error {
	doc, err := s.parser.Parse(name, src)
	if err != nil {
		return err
	}
	s.ui = doc
	return nil
}

// MustRegisterUI is RegisterUI for scene construction code that cannot
// continue without its UI.
func (s *Scene) MustRegisterUI(path string) {
	if err := s.RegisterUI(path); err != nil {
		panic(err)
	}
}

// RegisterCallback binds name for UI buttons.
func (s *Scene) RegisterCallback(name string, cb Callback) {
	s.callbacks[name] = cb
}

// SetInitialData sets a data map entry every activation starts with.
func (s *Scene) SetInitialData(key, value string) {
	s.data[key] = value
}

// Data reads the data map.
func (s *Scene) Data(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

// DataSnapshot returns a copy of the data map.
func (s *Scene) DataSnapshot() map[string]string {
	return maps.Clone(s.data)
}

// Entities yields entities in registration order.
func (s *Scene) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.entities {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Scene) Len() int {
	return len(s.entities)
}

// Entity looks up an entity by id.
func (s *Scene) Entity(id EntityID) (*Entity, bool) {
	return s.index.Get(id)
}

// EntityByCollider resolves the entity that owns a collider.
func (s *Scene) EntityByCollider(h physics.ColliderHandle) (*Entity, error) {
	collider, err := s.world.Collider(h)
	if err != nil {
		return nil, err
	}
	entity, ok := s.index.Get(EntityID(collider.UserData()))
	if !ok {
		return nil, fmt.Errorf("%w: %s has no entity", ErrMissingHandle, h)
	}
	return entity, nil
}

// instantiate replays the registration log into a fresh scene.
func (s *Scene) instantiate() *Scene {
	inst := newScene(s.name, s.tag, s.settings, s.parser)
	inst.ui = s.ui
	inst.callbacks = s.callbacks
	inst.data = maps.Clone(s.data)

	for _, rec := range s.records {
		inst.RegisterGameObject(rec.instance())
	}
	return inst
}
