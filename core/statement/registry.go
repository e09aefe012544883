package statement

import (
	"fmt"
	"sync"
)

// Registry records the default table of each repository. Registrations happen
// once per repository during startup; Freeze then rejects further changes so
// concurrent readers see a fixed map.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]string
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: map[string]string{}}
}

// RegisterDefaultTable binds table as the default for repo.
func (r *Registry) RegisterDefaultTable(repo, table string) error {
	if repo == "" || table == "" {
		return fmt.Errorf("repository and table names are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("registry is frozen, cannot register %s", repo)
	}
	if existing, ok := r.tables[repo]; ok {
		return fmt.Errorf("repository %s already bound to table %s", repo, existing)
	}
	r.tables[repo] = table
	return nil
}

// Freeze ends the registration phase.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Table returns the default table for repo.
func (r *Registry) Table(repo string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[repo]
	return t, ok
}

// Builder returns a Builder bound to repo's default table. An unregistered
// repo gets a Builder without a default, whose builds fail with
// ErrMissingTable unless the Config names a table.
func (r *Registry) Builder(repo string) Builder {
	t, _ := r.Table(repo)
	return NewBuilder(t)
}
