package model

import (
	"sync/atomic"

	"github.com/vitasense/vitasense-go/internal/domain/ports"
)

// Registry holds the current artifact bundle behind an atomic pointer and
// implements ports.ModelProvider. Every request reads one consistent
// snapshot; Reload swaps the whole bundle at once, so a half-written
// artifact directory can never mix old and new pieces.
type Registry struct {
	dir    string
	bundle atomic.Pointer[ports.ModelBundle]
}

// NewRegistry loads the artifact from dir and returns a registry serving it.
// A failed initial load is returned to the caller as a startup error.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{dir: dir}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Bundle returns the current snapshot.
func (r *Registry) Bundle() *ports.ModelBundle {
	return r.bundle.Load()
}

// Reload re-reads the artifact directory and swaps the snapshot in. On
// failure the previous snapshot stays live and keeps serving requests.
func (r *Registry) Reload() error {
	bundle, err := LoadBundle(r.dir)
	if err != nil {
		return err
	}
	r.bundle.Store(bundle)
	return nil
}
