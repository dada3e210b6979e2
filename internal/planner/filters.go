package planner

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"ancine-api/internal/catalog"
)

// reservedParams are control parameters that never become filters.
var reservedParams = map[string]struct{}{
	"limit":   {},
	"last_id": {},
}

// Predicate is one compiled equality condition against a named column.
type Predicate struct {
	Column catalog.Column
	Value  any
}

// RelationFilter groups the predicates that target one relation path.
type RelationFilter struct {
	Path       string
	Chain      []*catalog.Relation
	Predicates []Predicate
}

// Target returns the final relation of the path, the one the predicates
// apply to.
func (rf *RelationFilter) Target() *catalog.Relation {
	return rf.Chain[len(rf.Chain)-1]
}

// FilterSet is the compiled filter shape of one request: root-resource
// predicates plus per-relation predicate groups in deterministic path order.
type FilterSet struct {
	Root      []Predicate
	Relations []RelationFilter
}

// FiltersPath reports whether any predicate targets the given relation path
// or a path nested beneath it. A filtered relation must join inner so that
// non-matching rows are excluded rather than null-padded.
func (fs *FilterSet) FiltersPath(path string) bool {
	for _, rf := range fs.Relations {
		if rf.Path == path || strings.HasPrefix(rf.Path, path+".") {
			return true
		}
	}
	return false
}

// Empty reports whether the set carries no predicates at all.
func (fs *FilterSet) Empty() bool {
	return len(fs.Root) == 0 && len(fs.Relations) == 0
}

func (fs *FilterSet) relationFilter(path string, chain []*catalog.Relation) *RelationFilter {
	for i := range fs.Relations {
		if fs.Relations[i].Path == path {
			return &fs.Relations[i]
		}
	}
	fs.Relations = append(fs.Relations, RelationFilter{Path: path, Chain: chain})
	return &fs.Relations[len(fs.Relations)-1]
}

// CompileFilters validates every non-reserved query parameter against the
// resource's typed column allow-list and compiles it into an equality
// predicate. Dotted keys target a relation edge; everything else targets the
// root resource. Unknown fields are rejected instead of being passed through
// to the backend.
func CompileFilters(res *catalog.Resource, params url.Values) (*FilterSet, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fs := &FilterSet{}
	for _, key := range keys {
		raw := params.Get(key)
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if idx := strings.LastIndex(key, "."); idx >= 0 {
			relPath, colName := key[:idx], key[idx+1:]
			chain, ok := res.RelationPath(relPath)
			if !ok {
				return nil, fmt.Errorf("%w: unknown relation %q in filter %q", ErrInvalidFilter, relPath, key)
			}
			target := chain[len(chain)-1]
			col, ok := target.Column(colName)
			if !ok {
				return nil, fmt.Errorf("%w: unknown field %q on relation %q", ErrInvalidFilter, colName, relPath)
			}
			value, err := col.ParseValue(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
			}
			rf := fs.relationFilter(relPath, chain)
			rf.Predicates = append(rf.Predicates, Predicate{Column: col, Value: value})
			continue
		}

		col, ok := res.Column(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q on %s", ErrInvalidFilter, key, res.Name)
		}
		value, err := col.ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		fs.Root = append(fs.Root, Predicate{Column: col, Value: value})
	}
	return fs, nil
}
