package session

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"socketCanvas/internal/models"
)

// Registry is the ground truth for who is here. A connection allocates a
// pending user; only an explicit join makes it part of the roster, and an
// explicit leave returns it to pending without dropping the connection.
//
// Registry is not safe for concurrent use: every method is called from the
// dispatcher goroutine only.
type Registry struct {
	pending   map[uuid.UUID]*models.User
	active    map[uuid.UUID]*models.User
	spawnArea float64
}

func NewRegistry(spawnArea float64) *Registry {
	return &Registry{
		pending:   make(map[uuid.UUID]*models.User),
		active:    make(map[uuid.UUID]*models.User),
		spawnArea: spawnArea,
	}
}

// OnConnect allocates a user for a fresh connection with a randomized spawn
// position and palette color. The name defaults to the identifier until the
// client renames itself.
func (r *Registry) OnConnect(id uuid.UUID) *models.User {
	user := &models.User{
		ID:    id,
		Name:  id.String(),
		Color: Palette[rand.IntN(len(Palette))],
		X:     rand.Float64()*r.spawnArea - r.spawnArea/2,
		Y:     rand.Float64()*r.spawnArea - r.spawnArea/2,
	}
	r.pending[id] = user
	return user
}

// Join moves a pending user into the roster. Returns false if the id is not
// pending (unknown, or already joined).
func (r *Registry) Join(id uuid.UUID) (*models.User, bool) {
	user, ok := r.pending[id]
	if !ok {
		return nil, false
	}
	delete(r.pending, id)
	r.active[id] = user
	return user, true
}

// Leave moves a roster user back to pending. Returns false if the id was not
// participating.
func (r *Registry) Leave(id uuid.UUID) bool {
	user, ok := r.active[id]
	if !ok {
		return false
	}
	delete(r.active, id)
	r.pending[id] = user
	return true
}

// OnDisconnect removes the user entirely and reports whether it was part of
// the roster. The id is never reused afterwards.
func (r *Registry) OnDisconnect(id uuid.UUID) bool {
	_, wasActive := r.active[id]
	delete(r.active, id)
	delete(r.pending, id)
	return wasActive
}

// Get returns the roster record for id. Pending users are not visible here.
func (r *Registry) Get(id uuid.UUID) (*models.User, bool) {
	user, ok := r.active[id]
	return user, ok
}

// All returns the current roster keyed by identifier string, the shape the
// roster-snapshot payload is serialized in.
func (r *Registry) All() map[string]*models.User {
	roster := make(map[string]*models.User, len(r.active))
	for id, user := range r.active {
		roster[id.String()] = user
	}
	return roster
}
