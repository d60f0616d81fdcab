// Package attribute holds the dynamic key/value state of a remote entity.
//
// A Store keeps insertion order, drops guarded keys during bulk assignment and
// turns "<field>_base64" values for declared file fields into scratch files
// whose paths are released by Cleanup.
package attribute

import (
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"

	"github.com/crmarques/restrecord/faults"
)

// Base64Suffix marks an attribute carrying base64 file content.
const Base64Suffix = "_base64"

type Option func(*Store)

// WithIdentity names the identity attribute. It is always guarded.
func WithIdentity(name string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.identity = trimmed
		}
	}
}

// WithGuarded excludes names from bulk assignment.
func WithGuarded(names ...string) Option {
	return func(s *Store) {
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				s.guarded[trimmed] = struct{}{}
			}
		}
	}
}

// WithFileFields declares attributes that only enter the store as files.
func WithFileFields(names ...string) Option {
	return func(s *Store) {
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				s.fileFields[trimmed] = struct{}{}
			}
		}
	}
}

// WithScratchDisk sets where decoded files are written.
func WithScratchDisk(fs afero.Fs, dir string) Option {
	return func(s *Store) {
		if fs != nil {
			s.fs = fs
		}
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			s.scratchDir = trimmed
		}
	}
}

// Store is not safe for concurrent mutation; an entity owns exactly one.
type Store struct {
	keys       []string
	values     map[string]any
	identity   string
	guarded    map[string]struct{}
	fileFields map[string]struct{}
	fs         afero.Fs
	scratchDir string
	pending    []string
}

func NewStore(opts ...Option) *Store {
	store := &Store{
		values:     map[string]any{},
		identity:   "id",
		guarded:    map[string]struct{}{},
		fileFields: map[string]struct{}{},
		fs:         afero.NewOsFs(),
		scratchDir: "/tmp",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(store)
	}
	return store
}

// Identity returns the identity attribute name.
func (s *Store) Identity() string {
	return s.identity
}

// Fs returns the filesystem scratch files are written to.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) Get(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Value returns the attribute or nil when absent.
func (s *Store) Value(name string) any {
	return s.values[name]
}

func (s *Store) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

func (s *Store) Len() int {
	return len(s.keys)
}

// Set assigns a single attribute. It does not consult the guard list; only
// bulk assignment is guarded. A "<file field>_base64" name materializes a
// scratch file, and a "_base64" name for anything else is ignored.
func (s *Store) Set(name string, value any) error {
	if base, ok := strings.CutSuffix(name, Base64Suffix); ok {
		if !s.IsFileField(base) {
			return nil
		}
		return s.materialize(base, value)
	}
	s.put(name, value)
	return nil
}

// Unset removes name if present.
func (s *Store) Unset(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for idx, key := range s.keys {
		if key == name {
			s.keys = append(s.keys[:idx], s.keys[idx+1:]...)
			break
		}
	}
}

// Purge removes name and returns its previous value.
func (s *Store) Purge(name string) any {
	value := s.values[name]
	s.Unset(name)
	return value
}

// Inflate bulk-assigns values. Guarded names (always including the identity)
// are dropped, plain values for file fields are dropped, and base64 file
// values are materialized. Keys are applied in sorted order.
func (s *Store) Inflate(values map[string]any) error {
	return s.assign(values, true)
}

// Load is Inflate without the guard list. It is used to apply server
// responses, which are allowed to set the identity and other guarded names.
func (s *Store) Load(values map[string]any) error {
	return s.assign(values, false)
}

// Attributes returns a snapshot copy of the current values.
func (s *Store) Attributes() map[string]any {
	snapshot := make(map[string]any, len(s.values))
	for key, value := range s.values {
		snapshot[key] = value
	}
	return snapshot
}

// Keys returns attribute names in insertion order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *Store) IsGuarded(name string) bool {
	if name == s.identity {
		return true
	}
	_, ok := s.guarded[name]
	return ok
}

func (s *Store) IsFileField(name string) bool {
	_, ok := s.fileFields[name]
	return ok
}

// Guarded returns the effective guard list, identity included, sorted.
func (s *Store) Guarded() []string {
	names := make([]string, 0, len(s.guarded)+1)
	for name := range s.guarded {
		names = append(names, name)
	}
	if _, ok := s.guarded[s.identity]; !ok {
		names = append(names, s.identity)
	}
	sort.Strings(names)
	return names
}

// Decode copies the attributes into out, a pointer to a struct or map.
// Struct fields are matched through `mapstructure` tags and loose typing is
// allowed, so "42" decodes into an int field.
func (s *Store) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
		),
	})
	if err != nil {
		return faults.NewTypedError(faults.InternalError, "failed to build attribute decoder", err)
	}
	if err := decoder.Decode(s.Attributes()); err != nil {
		return faults.NewTypedError(faults.ValidationError, "failed to decode attributes", err)
	}
	return nil
}

func (s *Store) assign(values map[string]any, guarded bool) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if guarded && s.IsGuarded(key) {
			continue
		}
		if base, ok := strings.CutSuffix(key, Base64Suffix); ok {
			if !s.IsFileField(base) {
				continue
			}
			if err := s.materialize(base, values[key]); err != nil {
				return err
			}
			continue
		}
		if s.IsFileField(key) {
			continue
		}
		s.put(key, values[key])
	}
	return nil
}

func (s *Store) put(name string, value any) {
	if _, exists := s.values[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.values[name] = value
}
