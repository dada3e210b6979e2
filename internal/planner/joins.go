package planner

import "ancine-api/internal/catalog"

// Join is one edge of the eager-fetch plan. ParentTable is the table the edge
// joins from (the root resource or an intermediate relation).
type Join struct {
	Relation    *catalog.Relation
	Path        string
	ParentTable string
	Required    bool
}

// SelectJoins flattens the resource's relation tree into the fetch plan for
// one request. An edge is required (inner) when the domain declares it
// mandatory or when any filter targets it or anything beneath it; otherwise
// it stays optional (left) so rows lacking the relation survive with a null
// payload. A filter deeper in a chain forces every edge along the path.
func SelectJoins(res *catalog.Resource, fs *FilterSet) []Join {
	var joins []Join
	var walk func(relations []catalog.Relation, parentTable, prefix string)
	walk = func(relations []catalog.Relation, parentTable, prefix string) {
		for i := range relations {
			rel := &relations[i]
			path := rel.Name
			if prefix != "" {
				path = prefix + "." + rel.Name
			}
			joins = append(joins, Join{
				Relation:    rel,
				Path:        path,
				ParentTable: parentTable,
				Required:    rel.Required || fs.FiltersPath(path),
			})
			walk(rel.Relations, rel.Table, path)
		}
	}
	walk(res.Relations, res.Table, "")
	return joins
}
