package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// TagKey is the struct tag consumed during field injection.
const TagKey = "rivet"

// DefaultTagKey carries a literal default for primitive fields.
const DefaultTagKey = "default"

var (
	ErrNotStruct = errors.New("not a struct type")
	ErrBadTag    = errors.New("malformed injection tag")
)

// Binding names a configuration store entry.
type Binding struct {
	Section string
	Key     string
}

// Param describes one injectable parameter: a struct field of a
// component, or one argument of a factory function.
type Param struct {
	Name     string
	Index    int
	Type     reflect.Type
	Skip     bool
	Optional bool
	Setting  *Binding

	// Literal default from the `default:""` tag, converted at
	// resolution time to the field's primitive kind.
	DefaultLiteral string
	HasLiteral     bool

	// Arbitrary default supplied at registration time.
	DefaultValue any
	HasValue     bool
}

// HasDefault reports whether any declared default applies.
func (p Param) HasDefault() bool {
	return p.HasLiteral || p.HasValue
}

// StructParams derives the ordered parameter list from the exported
// fields of a struct (or pointer-to-struct) type.
func StructParams(t reflect.Type) ([]Param, error) {
	base := StructBase(t)
	if base.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, KeyOf(t))
	}

	params := make([]Param, 0, base.NumField())
	for i := 0; i < base.NumField(); i++ {
		field := base.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		p := Param{
			Name:  field.Name,
			Index: i,
			Type:  field.Type,
		}

		if err := applyTag(&p, field.Tag.Get(TagKey)); err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", base.Name(), field.Name, err)
		}

		if literal, ok := field.Tag.Lookup(DefaultTagKey); ok {
			p.DefaultLiteral = literal
			p.HasLiteral = true
		}

		params = append(params, p)
	}

	return params, nil
}

func applyTag(p *Param, tag string) error {
	if tag == "" {
		return nil
	}
	if tag == "-" {
		p.Skip = true
		return nil
	}

	for _, part := range strings.Split(tag, ",") {
		switch {
		case part == "optional":
			p.Optional = true
		case strings.HasPrefix(part, "setting:"):
			binding, err := parseBinding(strings.TrimPrefix(part, "setting:"))
			if err != nil {
				return err
			}
			p.Setting = binding
		default:
			return fmt.Errorf("%w: %q", ErrBadTag, part)
		}
	}
	return nil
}

func parseBinding(ref string) (*Binding, error) {
	section, key, found := strings.Cut(ref, ".")
	if !found || section == "" || key == "" {
		return nil, fmt.Errorf("%w: setting reference %q must be Section.Key", ErrBadTag, ref)
	}
	return &Binding{Section: section, Key: key}, nil
}
