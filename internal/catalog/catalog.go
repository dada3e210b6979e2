// Package catalog defines the static schema of the ANCINE cinema dataset:
// which tables each endpoint family may query, their typed column allow-lists,
// primary keys, and the relation edges available for eager fetching.
// Filters are validated against this catalog instead of being passed through
// to the backend unchecked.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldType is the value domain of a column, used for typed filter parsing
// and row scanning.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate
)

// Column describes one filterable column of a resource.
type Column struct {
	Name       string
	Type       FieldType
	PrimaryKey bool
}

// ParseValue converts a raw query-string value into the column's native type.
// The backend compares typed values, so coercion happens here rather than in SQL.
func (c Column) ParseValue(raw string) (any, error) {
	switch c.Type {
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value for %s must be an integer", c.Name)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value for %s must be a number", c.Name)
		}
		return f, nil
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("value for %s must be a boolean", c.Name)
		}
		return b, nil
	case TypeDate:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("value for %s must be a date (YYYY-MM-DD)", c.Name)
		}
		return t, nil
	default:
		return raw, nil
	}
}

// Relation is a named edge from a resource (or another relation) to a related
// table. Many-to-one edges join LocalColumn on the parent to RemoteColumn on
// the related table; one-to-many edges reverse the mapping (LocalColumn is the
// parent key referenced by RemoteColumn on the child).
type Relation struct {
	Name         string // JSON key and dotted filter path segment
	Table        string
	LocalColumn  string
	RemoteColumn string
	OneToMany    bool
	Required     bool // inherently inner join, independent of filters
	Columns      []Column
	Relations    []Relation
}

// Column finds a relation column by name.
func (rel *Relation) Column(name string) (Column, bool) {
	for _, c := range rel.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryKey returns the relation table's primary-key column.
func (rel *Relation) PrimaryKey() Column {
	for _, c := range rel.Columns {
		if c.PrimaryKey {
			return c
		}
	}
	return Column{}
}

// Resource is a queryable collection exposed by one endpoint family.
type Resource struct {
	Name      string
	Table     string
	Columns   []Column
	Relations []Relation
}

// PrimaryKey returns the resource's primary-key column. Every resource in the
// catalog declares exactly one.
func (r *Resource) PrimaryKey() Column {
	for _, c := range r.Columns {
		if c.PrimaryKey {
			return c
		}
	}
	return Column{}
}

// Column finds a root column by name.
func (r *Resource) Column(name string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// RelationPath resolves a dotted relation path like "complexos.exibidores"
// into the chain of edges it traverses.
func (r *Resource) RelationPath(path string) ([]*Relation, bool) {
	segments := strings.Split(path, ".")
	relations := r.Relations
	chain := make([]*Relation, 0, len(segments))
	for _, seg := range segments {
		var found *Relation
		for i := range relations {
			if relations[i].Name == seg {
				found = &relations[i]
				break
			}
		}
		if found == nil {
			return nil, false
		}
		chain = append(chain, found)
		relations = found.Relations
	}
	return chain, true
}

// ErrUnknownResource reports a resource name outside a family's allow-list.
var ErrUnknownResource = errors.New("unknown resource")

// Family is the fixed set of resources one endpoint family exposes. Each
// family owns its own resource universe; names valid in one family are not
// implicitly valid in another.
type Family struct {
	Name      string
	resources map[string]*Resource
}

// Resolve validates a resource name against the family allow-list and returns
// its descriptor.
func (f *Family) Resolve(name string) (*Resource, error) {
	if r, ok := f.resources[name]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

// Resources lists the family's resource names.
func (f *Family) Resources() []string {
	names := make([]string, 0, len(f.resources))
	for name := range f.resources {
		names = append(names, name)
	}
	return names
}

func newFamily(name string, resources ...*Resource) *Family {
	m := make(map[string]*Resource, len(resources))
	for _, r := range resources {
		m[r.Name] = r
	}
	return &Family{Name: name, resources: m}
}
