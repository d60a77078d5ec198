package composer

import (
	"time"

	"github.com/duskfall/mstro/internal/store"
)

// Storage keys for the builder configurations.
const (
	KeyArchitecture = "lyric-architecture-config"
	KeyStyleChooser = "music-style-chooser-config"
)

// ConfigStore persists the builder configurations in the local KV store.
//
// Loads fall back to the fixed defaults when nothing is saved or the stored
// blob does not parse; saves refresh LastModified.
type ConfigStore struct {
	kv  *store.KV
	now func() time.Time
}

// NewConfigStore creates a ConfigStore.
func NewConfigStore(kv *store.KV) *ConfigStore {
	return &ConfigStore{kv: kv, now: time.Now}
}

// LoadArchitecture returns the saved architecture or the default structure.
func (c *ConfigStore) LoadArchitecture() *Architecture {
	var arch Architecture
	if err := c.kv.Get(KeyArchitecture, &arch); err != nil {
		return DefaultArchitecture()
	}
	for _, s := range arch.Sections {
		if !s.Kind.Valid() {
			return DefaultArchitecture()
		}
	}
	arch.renumber()
	return &arch
}

// SaveArchitecture persists the architecture with a fresh timestamp.
func (c *ConfigStore) SaveArchitecture(arch *Architecture) error {
	arch.LastModified = c.now()
	return c.kv.Put(KeyArchitecture, arch, 0)
}

// LoadStyleChooser returns the saved selections or the empty default.
func (c *ConfigStore) LoadStyleChooser() *StyleChooser {
	var chooser StyleChooser
	if err := c.kv.Get(KeyStyleChooser, &chooser); err != nil {
		return DefaultStyleChooser()
	}
	return &chooser
}

// SaveStyleChooser persists the selections with a fresh timestamp.
func (c *ConfigStore) SaveStyleChooser(chooser *StyleChooser) error {
	chooser.LastModified = c.now()
	return c.kv.Put(KeyStyleChooser, chooser, 0)
}
