package planner

import (
	"net/url"
	"testing"

	"ancine-api/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatFixture() *catalog.Resource {
	return &catalog.Resource{
		Name:  "titles",
		Table: "titles",
		Columns: []catalog.Column{
			{Name: "id", Type: catalog.TypeInt, PrimaryKey: true},
			{Name: "title", Type: catalog.TypeString},
			{Name: "year", Type: catalog.TypeInt},
		},
	}
}

func joinedFixture() *catalog.Resource {
	return &catalog.Resource{
		Name:  "releases",
		Table: "releases",
		Columns: []catalog.Column{
			{Name: "id", Type: catalog.TypeInt, PrimaryKey: true},
			{Name: "title", Type: catalog.TypeString},
		},
		Relations: []catalog.Relation{
			{
				Name: "distributors", Table: "distributors",
				LocalColumn: "distributor_fk", RemoteColumn: "distributor_id",
				Required: true,
				Columns: []catalog.Column{
					{Name: "distributor_id", Type: catalog.TypeInt, PrimaryKey: true},
					{Name: "name", Type: catalog.TypeString},
				},
			},
			{
				Name: "works", Table: "works",
				LocalColumn: "work_fk", RemoteColumn: "work_id",
				Columns: []catalog.Column{
					{Name: "work_id", Type: catalog.TypeString, PrimaryKey: true},
					{Name: "work_title", Type: catalog.TypeString},
				},
			},
		},
	}
}

func childFixture() *catalog.Resource {
	return &catalog.Resource{
		Name:  "works",
		Table: "works",
		Columns: []catalog.Column{
			{Name: "cpb", Type: catalog.TypeString, PrimaryKey: true},
			{Name: "kind", Type: catalog.TypeString},
		},
		Relations: []catalog.Relation{
			{
				Name: "countries", Table: "countries",
				LocalColumn: "cpb", RemoteColumn: "work_fk",
				OneToMany: true,
				Columns: []catalog.Column{
					{Name: "id", Type: catalog.TypeInt, PrimaryKey: true},
					{Name: "work_fk", Type: catalog.TypeString},
					{Name: "country", Type: catalog.TypeString},
				},
			},
		},
	}
}

func TestPlanPage_Flat(t *testing.T) {
	res := flatFixture()
	fs, err := CompileFilters(res, url.Values{"year": {"2023"}})
	require.NoError(t, err)
	joins := SelectJoins(res, fs)
	window := Window{Limit: 2, Cursor: int64(7)}

	plan, err := PlanPage(res, fs, joins, window)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "id", "title", "year" FROM "titles" WHERE "year" = $1 AND "id" > $2 ORDER BY "id" ASC LIMIT 3`,
		plan.Rows.SQL)
	assert.Equal(t, []any{int64(2023), int64(7)}, plan.Rows.Args)

	assert.Equal(t,
		`SELECT COUNT(*) FROM "titles" WHERE "year" = $1`,
		plan.Count.SQL, "count query must not carry the cursor restriction")
	assert.Equal(t, []any{int64(2023)}, plan.Count.Args)

	assert.Equal(t, "id", plan.OrderColumn)
	require.Len(t, plan.Sections, 1)
	assert.Nil(t, plan.Sections[0].Relation)
	assert.Empty(t, plan.Children)
}

func TestPlanPage_FlatWithoutCursor(t *testing.T) {
	res := flatFixture()
	plan, err := PlanPage(res, &FilterSet{}, nil, Window{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "id", "title", "year" FROM "titles" ORDER BY "id" ASC LIMIT 11`,
		plan.Rows.SQL)
	assert.Empty(t, plan.Rows.Args)
	assert.Equal(t, `SELECT COUNT(*) FROM "titles"`, plan.Count.SQL)
}

func TestPlanPage_JoinedShape(t *testing.T) {
	res := joinedFixture()
	fs := &FilterSet{}
	joins := SelectJoins(res, fs)

	plan, err := PlanPage(res, fs, joins, Window{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "releases"."id", "releases"."title", `+
			`"distributors"."distributor_id" AS "distributors__distributor_id", "distributors"."name" AS "distributors__name", `+
			`"works"."work_id" AS "works__work_id", "works"."work_title" AS "works__work_title" `+
			`FROM "releases" `+
			`JOIN "distributors" ON "distributors"."distributor_id" = "releases"."distributor_fk" `+
			`LEFT JOIN "works" ON "works"."work_id" = "releases"."work_fk" `+
			`ORDER BY "releases"."id" ASC LIMIT 11`,
		plan.Rows.SQL)

	require.Len(t, plan.Sections, 3)
	assert.Equal(t, []string{"distributors"}, plan.Sections[1].Path)
	assert.Equal(t, []string{"works"}, plan.Sections[2].Path)
}

func TestPlanPage_NestedFilterForcesInnerJoin(t *testing.T) {
	res := joinedFixture()
	fs, err := CompileFilters(res, url.Values{"works.work_title": {"Central"}})
	require.NoError(t, err)
	joins := SelectJoins(res, fs)

	plan, err := PlanPage(res, fs, joins, Window{Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, plan.Rows.SQL, `JOIN "works" ON "works"."work_id" = "releases"."work_fk"`)
	assert.NotContains(t, plan.Rows.SQL, `LEFT JOIN "works"`,
		"a filtered relation must narrow, not null-pad")
	assert.Contains(t, plan.Rows.SQL, `"works"."work_title" = $1`)
	assert.Contains(t, plan.Count.SQL, `JOIN "works"`)
	assert.Equal(t, []any{"Central"}, plan.Count.Args)
}

func TestPlanPage_OneToManyExists(t *testing.T) {
	res := childFixture()
	fs, err := CompileFilters(res, url.Values{"countries.country": {"França"}})
	require.NoError(t, err)
	joins := SelectJoins(res, fs)

	plan, err := PlanPage(res, fs, joins, Window{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "cpb", "kind" FROM "works" WHERE EXISTS (SELECT 1 FROM "countries" `+
			`WHERE "countries"."work_fk" = "works"."cpb" AND "countries"."country" = $1) `+
			`ORDER BY "cpb" ASC LIMIT 11`,
		plan.Rows.SQL)
	assert.Equal(t, []any{"França"}, plan.Rows.Args)

	require.Len(t, plan.Children, 1)
	assert.Equal(t, "countries", plan.Children[0].Path)
	require.Len(t, plan.Children[0].Predicates, 1)
}

func TestPlanChildBatch(t *testing.T) {
	res := childFixture()
	fs, err := CompileFilters(res, url.Values{"countries.country": {"França"}})
	require.NoError(t, err)
	plan, err := PlanPage(res, fs, SelectJoins(res, fs), Window{Limit: 10})
	require.NoError(t, err)

	batch, err := PlanChildBatch(plan.Children[0], []any{"B001", "B002"})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "id", "work_fk", "country" FROM "countries" `+
			`WHERE "work_fk" IN ($1,$2) AND "country" = $3 ORDER BY "id" ASC`,
		batch.SQL)
	assert.Equal(t, []any{"B001", "B002", "França"}, batch.Args)
}

func TestPaginate(t *testing.T) {
	row := func(id string) map[string]any { return map[string]any{"pk": id} }

	t.Run("full window with extra row", func(t *testing.T) {
		page := Paginate([]map[string]any{row("A"), row("B"), row("C")}, 2, "pk")
		assert.True(t, page.HasNext)
		require.Len(t, page.Rows, 2)
		assert.Equal(t, "B", page.NextCursor)
	})

	t.Run("final partial page", func(t *testing.T) {
		page := Paginate([]map[string]any{row("E")}, 2, "pk")
		assert.False(t, page.HasNext)
		require.Len(t, page.Rows, 1)
		assert.Equal(t, "E", page.NextCursor)
	})

	t.Run("empty result", func(t *testing.T) {
		page := Paginate(nil, 2, "pk")
		assert.False(t, page.HasNext)
		assert.NotNil(t, page.Rows)
		assert.Empty(t, page.Rows)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("exactly limit rows", func(t *testing.T) {
		page := Paginate([]map[string]any{row("C"), row("D")}, 2, "pk")
		assert.False(t, page.HasNext, "no extra row fetched means no next page")
		assert.Equal(t, "D", page.NextCursor)
	})
}

// Walks the five-row example end to end: keys A..E, page size 2.
func TestPaginate_SuccessivePagesPartition(t *testing.T) {
	keys := []string{"A", "B", "C", "D", "E"}
	fetch := func(after string, limit int) []map[string]any {
		var out []map[string]any
		for _, k := range keys {
			if after != "" && k <= after {
				continue
			}
			out = append(out, map[string]any{"pk": k})
			if len(out) == limit+1 {
				break
			}
		}
		return out
	}

	var seen []string
	cursor := ""
	for {
		page := Paginate(fetch(cursor, 2), 2, "pk")
		for _, r := range page.Rows {
			seen = append(seen, r["pk"].(string))
		}
		if !page.HasNext {
			break
		}
		cursor = page.NextCursor.(string)
	}
	assert.Equal(t, keys, seen, "pages must partition the result set exactly")
}
