package domain

import "context"

// ChannelLookup resolves channel names to ids and back. Implementations are
// read-only snapshots; rebuilding one is the owner's concern.
type ChannelLookup interface {
	IDByName(name string) (string, bool)
	NameByID(id string) (string, bool)
	DefaultChannelIDs() []string
}

// ChannelMap is an in-memory ChannelLookup.
type ChannelMap struct {
	byName     map[string]string
	byID       map[string]string
	defaultIDs []string
}

// NewChannelMap builds a lookup from a name->id mapping. The reverse map is
// derived from it.
func NewChannelMap(nameToID map[string]string, defaultIDs []string) *ChannelMap {
	byName := make(map[string]string, len(nameToID))
	byID := make(map[string]string, len(nameToID))
	for name, id := range nameToID {
		byName[name] = id
		byID[id] = name
	}

	defaults := make([]string, len(defaultIDs))
	copy(defaults, defaultIDs)

	return &ChannelMap{
		byName:     byName,
		byID:       byID,
		defaultIDs: defaults,
	}
}

func (m *ChannelMap) IDByName(name string) (string, bool) {
	id, ok := m.byName[name]
	return id, ok
}

func (m *ChannelMap) NameByID(id string) (string, bool) {
	name, ok := m.byID[id]
	return name, ok
}

// DefaultChannelIDs returns a copy so callers can't mutate the snapshot.
func (m *ChannelMap) DefaultChannelIDs() []string {
	out := make([]string, len(m.defaultIDs))
	copy(out, m.defaultIDs)
	return out
}

func (m *ChannelMap) Len() int {
	return len(m.byName)
}

// StaticDirectory serves a fixed lookup. Refresh returns the same snapshot.
type StaticDirectory struct {
	lookup ChannelLookup
}

func NewStaticDirectory(lookup ChannelLookup) *StaticDirectory {
	return &StaticDirectory{lookup: lookup}
}

func (d *StaticDirectory) Lookup(_ context.Context) (ChannelLookup, error) {
	return d.lookup, nil
}

func (d *StaticDirectory) Refresh(_ context.Context) (ChannelLookup, error) {
	return d.lookup, nil
}
