package launcher

import (
	"strings"

	"github.com/mmr-tortoise/useenv/internal/model"
)

// envEntry is one variable in an envSet. An entry read from the parent
// without any '=' is bare and is written back exactly as it was read.
type envEntry struct {
	name  string
	value string
	bare  bool
}

func (e envEntry) String() string {
	if e.bare {
		return e.name
	}
	return e.name + "=" + e.value
}

// envSet is an insertion-ordered set of environment variables.
type envSet struct {
	entries []envEntry
	// index maps a live name to its position in entries. Entries whose
	// position no longer matches index were removed or overwritten.
	index map[string]int
}

func newEnvSet(capacity int) *envSet {
	return &envSet{
		entries: make([]envEntry, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

func (s *envSet) put(name, value string) {
	s.putEntryValue(envEntry{name: name, value: value})
}

func (s *envSet) putEntryValue(e envEntry) {
	if i, ok := s.index[e.name]; ok {
		s.entries[i] = e
		return
	}
	s.index[e.name] = len(s.entries)
	s.entries = append(s.entries, e)
}

func (s *envSet) remove(name string) {
	delete(s.index, name)
}

// putEntry adds a raw NAME=VALUE string. The search for '=' starts at
// the second byte so Windows entries like "=C:=C:\dir" keep "=C:" as
// their name. An entry without '=' is kept bare, never given an empty
// value.
func (s *envSet) putEntry(kv string) {
	if kv == "" {
		return
	}
	i := strings.IndexByte(kv[1:], '=')
	if i < 0 {
		s.putEntryValue(envEntry{name: kv, bare: true})
		return
	}
	s.put(kv[:i+1], kv[i+2:])
}

// environ never returns nil: os/exec treats a nil Cmd.Env as "inherit
// the parent's environment".
func (s *envSet) environ() []string {
	out := make([]string, 0, len(s.index))
	for i, e := range s.entries {
		if j, ok := s.index[e.name]; ok && j == i {
			out = append(out, e.String())
		}
	}
	return out
}

// BuildEnviron applies mod to base and returns the child's environment
// block. fileVars are applied before mod.SetVars.
func BuildEnviron(base []string, mod model.EnvironmentModification, fileVars []model.Assignment) []string {
	set := newEnvSet(len(base) + len(fileVars) + len(mod.SetVars))

	if !mod.ClearEnv {
		for _, kv := range base {
			set.putEntry(kv)
		}
	}
	for _, name := range mod.UnsetVars {
		set.remove(name)
	}
	for _, a := range fileVars {
		set.put(a.Name, a.Value)
	}
	for _, a := range mod.SetVars {
		set.put(a.Name, a.Value)
	}

	return set.environ()
}
