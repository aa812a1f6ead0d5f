/*
Copyright © 2022 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cryptors

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bgallie/classic/score"
	"github.com/google/uuid"
)

// Constructor creates a cipher that ranks its solutions with s.
type Constructor func(s score.Scorer) Cipher

// Registry maps type names to constructors and keeps the ciphers it has
// created under a unique id.  Create one per process and pass it to whatever
// needs to build ciphers.
type Registry struct {
	scorer score.Scorer

	mu        sync.Mutex
	ctors     map[string]Constructor
	instances map[uuid.UUID]Cipher
}

// NewRegistry returns an empty registry whose ciphers score with s.
func NewRegistry(s score.Scorer) *Registry {
	return &Registry{
		scorer:    s,
		ctors:     make(map[string]Constructor),
		instances: make(map[uuid.UUID]Cipher),
	}
}

// Register adds a cipher type.  Registering a name twice is a programming
// error and panics.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ctors[name]; dup {
		panic(fmt.Sprintf("cryptors: type %q registered twice", name))
	}
	r.ctors[name] = ctor
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates a cipher of the named type and records it under a fresh id.
func (r *Registry) New(name string) (uuid.UUID, Cipher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctor, ok := r.ctors[name]
	if !ok {
		return uuid.Nil, nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	id := uuid.New()
	c := ctor(r.scorer)
	r.instances[id] = c
	return id, c, nil
}

// Get returns the cipher recorded under id.
func (r *Registry) Get(id uuid.UUID) (Cipher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.instances[id]
	return c, ok
}

// Release forgets the cipher recorded under id.
func (r *Registry) Release(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, id)
}

// Len returns the number of live ciphers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
