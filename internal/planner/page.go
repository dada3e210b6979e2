package planner

import (
	"fmt"
	"strings"

	"ancine-api/internal/catalog"
	"ancine-api/internal/sqlutil"

	sq "github.com/Masterminds/squirrel"
)

// Section describes one contiguous run of columns in the page SELECT list:
// the root resource's columns, or one joined relation's columns aliased with
// the relation path prefix. The scanner uses sections to rebuild nested
// payloads from a flat row.
type Section struct {
	Path     []string
	Relation *catalog.Relation
	Columns  []catalog.Column
}

// ChildFetch is a one-to-many edge fetched per page with a batched IN query
// instead of a join, so the page window stays one row per root record.
type ChildFetch struct {
	Relation   *catalog.Relation
	Path       string
	Predicates []Predicate
}

// PagePlan holds the planned SQL for one paginated request: the windowed rows
// query (limit+1 fetch with the seek restriction) and the independent count
// query (same predicates, no cursor).
type PagePlan struct {
	Rows        SQLQuery
	Count       SQLQuery
	Sections    []Section
	Children    []ChildFetch
	Limit       int
	OrderColumn string
}

// PlanPage builds the page and count statements for a resource. Ordering is
// always the resource primary key ascending — a unique, totally ordered
// column — so following next_cursor partitions the filtered set with no
// skipped or duplicated rows even under concurrent inserts.
func PlanPage(res *catalog.Resource, fs *FilterSet, joins []Join, window Window) (*PagePlan, error) {
	pk := res.PrimaryKey()
	if pk.Name == "" {
		return nil, fmt.Errorf("resource %s has no primary key", res.Name)
	}

	hasJoin := false
	for _, j := range joins {
		if !j.Relation.OneToMany {
			hasJoin = true
			break
		}
	}

	selectCols := make([]string, 0, len(res.Columns))
	for _, c := range res.Columns {
		if hasJoin {
			selectCols = append(selectCols, qualified(res.Table, c.Name))
		} else {
			selectCols = append(selectCols, sqlutil.QuoteIdentifier(c.Name))
		}
	}
	sections := []Section{{Columns: res.Columns}}

	var children []ChildFetch
	for _, j := range joins {
		if j.Relation.OneToMany {
			child := ChildFetch{Relation: j.Relation, Path: j.Path}
			for _, rf := range fs.Relations {
				if rf.Path == j.Path {
					child.Predicates = rf.Predicates
				}
			}
			children = append(children, child)
			continue
		}
		path := strings.Split(j.Path, ".")
		sections = append(sections, Section{Path: path, Relation: j.Relation, Columns: j.Relation.Columns})
		for _, c := range j.Relation.Columns {
			selectCols = append(selectCols, fmt.Sprintf(
				"%s AS %s",
				qualified(j.Relation.Table, c.Name),
				sqlutil.QuoteIdentifier(sectionAlias(path, c.Name)),
			))
		}
	}

	builder := sq.Select(selectCols...).From(sqlutil.QuoteIdentifier(res.Table))
	builder = applyJoins(builder, joins)
	builder, err := applyFilterConditions(builder, res, fs, joins, hasJoin)
	if err != nil {
		return nil, err
	}

	orderExpr := sqlutil.QuoteIdentifier(pk.Name)
	if hasJoin {
		orderExpr = qualified(res.Table, pk.Name)
	}

	rowsBuilder := builder
	if window.HasCursor() {
		rowsBuilder = rowsBuilder.Where(seekCondition(orderExpr, window.Cursor))
	}
	rowsSQL, rowsArgs, err := rowsBuilder.
		OrderBy(orderExpr + " ASC").
		Limit(uint64(window.Limit + 1)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	countBuilder := sq.Select("COUNT(*)").From(sqlutil.QuoteIdentifier(res.Table))
	countBuilder = applyJoins(countBuilder, joins)
	countBuilder, err = applyFilterConditions(countBuilder, res, fs, joins, hasJoin)
	if err != nil {
		return nil, err
	}
	countSQL, countArgs, err := countBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	return &PagePlan{
		Rows:        SQLQuery{SQL: rowsSQL, Args: rowsArgs},
		Count:       SQLQuery{SQL: countSQL, Args: countArgs},
		Sections:    sections,
		Children:    children,
		Limit:       window.Limit,
		OrderColumn: pk.Name,
	}, nil
}

// seekCondition restricts the window to rows strictly after the cursor.
// Strict inequality keeps the restriction stable when the cursor row itself
// has been deleted.
func seekCondition(orderExpr string, cursor any) sq.Sqlizer {
	return sq.Expr(orderExpr+" > ?", cursor)
}

func applyJoins(builder sq.SelectBuilder, joins []Join) sq.SelectBuilder {
	for _, j := range joins {
		if j.Relation.OneToMany {
			continue
		}
		clause := fmt.Sprintf(
			"%s ON %s = %s",
			sqlutil.QuoteIdentifier(j.Relation.Table),
			qualified(j.Relation.Table, j.Relation.RemoteColumn),
			qualified(j.ParentTable, j.Relation.LocalColumn),
		)
		if j.Required {
			builder = builder.Join(clause)
		} else {
			builder = builder.LeftJoin(clause)
		}
	}
	return builder
}

func applyFilterConditions(builder sq.SelectBuilder, res *catalog.Resource, fs *FilterSet, joins []Join, hasJoin bool) (sq.SelectBuilder, error) {
	for _, p := range fs.Root {
		col := sqlutil.QuoteIdentifier(p.Column.Name)
		if hasJoin {
			col = qualified(res.Table, p.Column.Name)
		}
		builder = builder.Where(sq.Eq{col: p.Value})
	}

	for _, rf := range fs.Relations {
		target := rf.Target()
		if target.OneToMany {
			cond, err := existsCondition(res.Table, target, rf.Predicates)
			if err != nil {
				return builder, err
			}
			builder = builder.Where(cond)
			continue
		}
		for _, p := range rf.Predicates {
			builder = builder.Where(sq.Eq{qualified(target.Table, p.Column.Name): p.Value})
		}
	}
	return builder, nil
}

// existsCondition builds the correlated EXISTS predicate that narrows root
// rows to those with a matching child, without multiplying the page window.
func existsCondition(rootTable string, rel *catalog.Relation, preds []Predicate) (sq.Sqlizer, error) {
	sub := sq.Select("1").
		From(sqlutil.QuoteIdentifier(rel.Table)).
		Where(sq.Expr(fmt.Sprintf(
			"%s = %s",
			qualified(rel.Table, rel.RemoteColumn),
			qualified(rootTable, rel.LocalColumn),
		)))
	for _, p := range preds {
		sub = sub.Where(sq.Eq{qualified(rel.Table, p.Column.Name): p.Value})
	}
	subSQL, subArgs, err := sub.PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return nil, err
	}
	return sq.Expr("EXISTS ("+subSQL+")", subArgs...), nil
}

// PlanChildBatch builds the batched fetch for a one-to-many edge covering all
// parent keys on the current page. Filter predicates compiled for the edge
// also narrow the fetched children, matching the narrowing applied to parents.
func PlanChildBatch(child ChildFetch, parentKeys []any) (SQLQuery, error) {
	rel := child.Relation
	cols := make([]string, 0, len(rel.Columns))
	for _, c := range rel.Columns {
		cols = append(cols, sqlutil.QuoteIdentifier(c.Name))
	}

	builder := sq.Select(cols...).
		From(sqlutil.QuoteIdentifier(rel.Table)).
		Where(sq.Eq{sqlutil.QuoteIdentifier(rel.RemoteColumn): parentKeys})
	for _, p := range child.Predicates {
		builder = builder.Where(sq.Eq{sqlutil.QuoteIdentifier(p.Column.Name): p.Value})
	}

	pk := rel.PrimaryKey()
	if pk.Name != "" {
		builder = builder.OrderBy(sqlutil.QuoteIdentifier(pk.Name) + " ASC")
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// Page is the trimmed result of one limit+1 window fetch.
type Page struct {
	Rows       []map[string]any
	HasNext    bool
	NextCursor any
}

// Paginate derives has_next from the extra row, trims the page to the
// requested size, and takes the next cursor from the last row of the trimmed
// page (null only when the page is empty).
func Paginate(rows []map[string]any, limit int, orderColumn string) Page {
	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}
	var next any
	if len(rows) > 0 {
		next = rows[len(rows)-1][orderColumn]
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return Page{Rows: rows, HasNext: hasNext, NextCursor: next}
}
