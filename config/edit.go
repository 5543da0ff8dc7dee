package config

import (
	"fmt"

	"github.com/randalmurphal/agentcfg/merge"
)

// AddLevel appends a hierarchy entry, or inserts it at position when
// position is within range. Position counts from zero; the end of the
// hierarchy is the highest priority.
func (d *Data) AddLevel(entry HierarchyEntry, position int) error {
	for _, existing := range d.Hierarchy {
		if existing.Name == entry.Name {
			return fmt.Errorf("hierarchy level %q already exists", entry.Name)
		}
	}
	if position < 0 || position >= len(d.Hierarchy) {
		d.Hierarchy = append(d.Hierarchy, entry)
		return nil
	}
	d.Hierarchy = append(d.Hierarchy[:position], append([]HierarchyEntry{entry}, d.Hierarchy[position:]...)...)
	return nil
}

// RemoveLevel removes the named hierarchy entry.
func (d *Data) RemoveLevel(name string) error {
	for i, entry := range d.Hierarchy {
		if entry.Name == name {
			d.Hierarchy = append(d.Hierarchy[:i], d.Hierarchy[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("hierarchy level %q not found", name)
}

// MoveLevel moves the named entry to position, clamping to the hierarchy
// bounds.
func (d *Data) MoveLevel(name string, position int) error {
	from := -1
	for i, entry := range d.Hierarchy {
		if entry.Name == name {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("hierarchy level %q not found", name)
	}

	entry := d.Hierarchy[from]
	d.Hierarchy = append(d.Hierarchy[:from], d.Hierarchy[from+1:]...)
	if position < 0 {
		position = 0
	}
	if position > len(d.Hierarchy) {
		position = len(d.Hierarchy)
	}
	d.Hierarchy = append(d.Hierarchy[:position], append([]HierarchyEntry{entry}, d.Hierarchy[position:]...)...)
	return nil
}

// SetMergerSetting stores one merger preference override. Values are
// validated lazily by the merger at merge time; the store keeps whatever
// the user supplied.
func (d *Data) SetMergerSetting(merger, key string, value any) {
	if d.Mergers == nil {
		d.Mergers = make(map[string]map[string]any)
	}
	if d.Mergers[merger] == nil {
		d.Mergers[merger] = make(map[string]any)
	}
	d.Mergers[merger][key] = value
}

// MergerSettings converts the stored overrides into the settings map the
// merge engine consumes.
func (d *Data) MergerSettings() map[string]merge.Settings {
	if len(d.Mergers) == 0 {
		return nil
	}
	out := make(map[string]merge.Settings, len(d.Mergers))
	for name, settings := range d.Mergers {
		out[name] = merge.Settings(settings)
	}
	return out
}
