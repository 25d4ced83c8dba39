package repo

import (
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// Settings manages the security-settings singleton document.
type Settings struct {
	c *core
}

// Get returns the current settings, falling back to the defaults when
// the document is missing or corrupt.
func (r *Settings) Get() (model.SecuritySettings, error) {
	var s model.SecuritySettings
	ok, err := r.c.store.Get(store.KeySecuritySettings, &s)
	if err != nil {
		return model.SecuritySettings{}, err
	}
	if !ok {
		s = model.DefaultSecuritySettings()
	}
	return s, nil
}

// Update replaces the settings document wholesale.
func (r *Settings) Update(s model.SecuritySettings) (model.SecuritySettings, error) {
	if err := r.c.store.Set(store.KeySecuritySettings, s); err != nil {
		return model.SecuritySettings{}, err
	}
	if err := r.c.mutated("security_settings", "update"); err != nil {
		return model.SecuritySettings{}, err
	}
	return s, nil
}
