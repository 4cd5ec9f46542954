package rivet

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// Store maps (section, key) pairs to primitive values and backs
// setting-bound parameters. Lookups are case-insensitive, matching
// the config-file loader, which lowercases keys. Safe for concurrent
// use.
type Store struct {
	mu       sync.RWMutex
	sections map[string]map[string]any
}

func NewStore() *Store {
	return &Store{
		sections: make(map[string]map[string]any),
	}
}

func normalize(name string) string {
	return strings.ToLower(name)
}

// SetValues replaces the whole store contents.
func (s *Store) SetValues(values map[string]map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sections = make(map[string]map[string]any, len(values))
	for section, entries := range values {
		target := make(map[string]any, len(entries))
		for key, value := range entries {
			target[normalize(key)] = value
		}
		s.sections[normalize(section)] = target
	}
}

// AddValues merges values into the store. Merge is not overwrite: any
// (section, key) pair that already exists fails the whole call, and
// nothing is applied.
func (s *Store) AddValues(values map[string]map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for section, entries := range values {
		existing := s.sections[normalize(section)]
		for key := range entries {
			if existing == nil {
				continue
			}
			if _, ok := existing[normalize(key)]; ok {
				return errConfigKeyCollision(section, key)
			}
		}
	}

	for section, entries := range values {
		target := s.sections[normalize(section)]
		if target == nil {
			target = make(map[string]any, len(entries))
			s.sections[normalize(section)] = target
		}
		for key, value := range entries {
			target[normalize(key)] = value
		}
	}
	return nil
}

func (s *Store) Has(section, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.sections[normalize(section)]
	if !ok {
		return false
	}
	_, ok = entries[normalize(key)]
	return ok
}

// Sections returns the section names present in the store, sorted.
func (s *Store) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.sections))
	for section := range s.sections {
		out = append(out, section)
	}
	sort.Strings(out)
	return out
}

func (s *Store) lookup(section, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.sections[normalize(section)]
	if !ok {
		return nil, errConfigKeyMissing(section, key)
	}
	value, ok := entries[normalize(key)]
	if !ok {
		return nil, errConfigKeyMissing(section, key)
	}
	return value, nil
}

func (s *Store) Bool(section, key string) (bool, error) {
	raw, err := s.lookup(section, key)
	if err != nil {
		return false, err
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return false, errConfigTypeMismatch(section, key, "bool", err)
	}
	return v, nil
}

func (s *Store) Int(section, key string) (int, error) {
	raw, err := s.lookup(section, key)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, errConfigTypeMismatch(section, key, "int", err)
	}
	return v, nil
}

func (s *Store) Float(section, key string) (float64, error) {
	raw, err := s.lookup(section, key)
	if err != nil {
		return 0, err
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, errConfigTypeMismatch(section, key, "float", err)
	}
	return v, nil
}

func (s *Store) String(section, key string) (string, error) {
	raw, err := s.lookup(section, key)
	if err != nil {
		return "", err
	}
	v, err := cast.ToStringE(raw)
	if err != nil {
		return "", errConfigTypeMismatch(section, key, "string", err)
	}
	return v, nil
}

// valueAs converts the stored value to the declared parameter type for
// setting-bound injection.
func (s *Store) valueAs(t reflect.Type, section, key string) (reflect.Value, error) {
	raw, err := s.lookup(section, key)
	if err != nil {
		return reflect.Value{}, err
	}

	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Bool:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return reflect.Value{}, errConfigTypeMismatch(section, key, "bool", err)
		}
		out.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := cast.ToInt64E(raw)
		if err != nil {
			return reflect.Value{}, errConfigTypeMismatch(section, key, "int", err)
		}
		out.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := cast.ToUint64E(raw)
		if err != nil {
			return reflect.Value{}, errConfigTypeMismatch(section, key, "uint", err)
		}
		out.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return reflect.Value{}, errConfigTypeMismatch(section, key, "float", err)
		}
		out.SetFloat(v)
	case reflect.String:
		v, err := cast.ToStringE(raw)
		if err != nil {
			return reflect.Value{}, errConfigTypeMismatch(section, key, "string", err)
		}
		out.SetString(v)
	default:
		return reflect.Value{}, errConfigTypeMismatch(
			section, key, t.Kind().String(), nil,
		)
	}
	return out, nil
}
