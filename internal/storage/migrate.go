// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import "fmt"

// Legacy key scheme, read-only. An earlier release stored the
// per-workspace partitions under these names.
const (
	fmtLegacyCategories = "workspace_%s_categories"
	fmtLegacyCards      = "workspace_%s_data"
	fmtLegacyTheme      = "workspace_%s_theme"
	keyLegacyDarkMode   = "darkMode"
	prefDarkMode        = "darkMode"
)

// MigrateOldData copies legacy per-workspace keys into the current
// partition scheme, once per installation. A legacy value is copied only
// when the current key holds nothing, so newer data is never overwritten
// with older data. An empty index short-circuits without setting the
// migrated flag; re-running is idempotent either way.
func (a *Adapter) MigrateOldData() error {
	list := a.GetWorkspaces()
	if len(list) == 0 {
		return nil
	}

	if flag, ok := a.get(keyMigrated); ok && flag == "true" {
		return nil
	}

	for _, ws := range list {
		pairs := [][2]string{
			{fmt.Sprintf(fmtLegacyCategories, ws.ID), fmt.Sprintf(fmtCategories, ws.ID)},
			{fmt.Sprintf(fmtLegacyCards, ws.ID), fmt.Sprintf(fmtCards, ws.ID)},
			{fmt.Sprintf(fmtLegacyTheme, ws.ID), fmt.Sprintf(fmtTheme, ws.ID)},
		}
		for _, p := range pairs {
			old, ok := a.get(p[0])
			if !ok {
				continue
			}
			if _, exists := a.get(p[1]); exists {
				continue
			}
			if err := a.set(p[1], old); err != nil {
				return fmt.Errorf("migrating %s: %w", p[0], err)
			}
			a.log.Info().Str("from", p[0]).Str("to", p[1]).Msg("migrated legacy key")
		}
	}

	if old, ok := a.get(keyLegacyDarkMode); ok {
		if _, exists := a.GetPreference(prefDarkMode); !exists {
			if err := a.SetPreference(prefDarkMode, old); err != nil {
				return fmt.Errorf("migrating dark mode preference: %w", err)
			}
		}
	}

	return a.set(keyMigrated, "true")
}
