// Package api implements the HTTP surface: routing, request validation,
// query execution, and response envelopes.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ancine-api/internal/catalog"
	"ancine-api/internal/dbexec"
	"ancine-api/internal/observability"
	"ancine-api/internal/planner"
)

// Server holds the executor and the resource universe of every endpoint
// family. Resources are immutable after construction, so one Server is safe
// for concurrent requests.
type Server struct {
	exec dbexec.QueryExecutor

	exhibition  *catalog.Family
	salas       *catalog.Resource
	obras       *catalog.Resource
	lancamentos *catalog.Resource
	filmagem    *catalog.Resource
}

// NewServer wires the handler set against a query executor.
func NewServer(exec dbexec.QueryExecutor) *Server {
	return &Server{
		exec:        exec,
		exhibition:  catalog.Exhibition(),
		salas:       catalog.SalaSearch(),
		obras:       catalog.ObraSearch(),
		lancamentos: catalog.LancamentoSearch(),
		filmagem:    catalog.FilmagemEstrangeira(),
	}
}

// runPagedQuery executes one paginated request end to end: window and filter
// validation, plan construction, the limit+1 page fetch, the independent
// count, and any batched one-to-many child fetches.
func (s *Server) runPagedQuery(ctx context.Context, res *catalog.Resource, params url.Values) (*Envelope, error) {
	window, err := planner.ParseWindow(params, res.PrimaryKey())
	if err != nil {
		return nil, err
	}
	fs, err := planner.CompileFilters(res, params)
	if err != nil {
		return nil, err
	}
	joins := planner.SelectJoins(res, fs)
	plan, err := planner.PlanPage(res, fs, joins, window)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.exec.QueryContext(ctx, plan.Rows.SQL, plan.Rows.Args...)
	observability.ObserveQuery(res.Name, "page", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("querying %s page: %w", res.Name, err)
	}
	records, err := dbexec.ScanSections(rows, plan.Sections)
	if err != nil {
		return nil, err
	}
	page := planner.Paginate(records, plan.Limit, plan.OrderColumn)

	var total int64
	start = time.Now()
	row, err := s.exec.QueryRowContext(ctx, plan.Count.SQL, plan.Count.Args...)
	if err == nil {
		err = row.Scan(&total)
	}
	observability.ObserveQuery(res.Name, "count", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", res.Name, err)
	}

	for _, child := range plan.Children {
		if err := s.fetchChildren(ctx, res, child, page.Rows); err != nil {
			return nil, err
		}
	}

	return &Envelope{
		Data: page.Rows,
		Pagination: Pagination{
			TotalFilteredCount: total,
			PerPage:            plan.Limit,
			NextCursor:         page.NextCursor,
			HasNext:            page.HasNext,
		},
	}, nil
}

// fetchChildren loads one one-to-many edge for the whole page with a single
// IN query and nests the grouped rows under the relation name. Parents with
// no children carry an empty array, never null.
func (s *Server) fetchChildren(ctx context.Context, res *catalog.Resource, child planner.ChildFetch, parents []map[string]any) error {
	segments := strings.Split(child.Path, ".")
	name := segments[len(segments)-1]

	keys := make([]any, 0, len(parents))
	seen := make(map[any]struct{}, len(parents))
	for _, parent := range parents {
		parent[name] = []map[string]any{}
		key := parent[child.Relation.LocalColumn]
		if key == nil {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}

	batch, err := planner.PlanChildBatch(child, keys)
	if err != nil {
		return err
	}
	start := time.Now()
	rows, err := s.exec.QueryContext(ctx, batch.SQL, batch.Args...)
	observability.ObserveQuery(res.Name, "children", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("querying %s children: %w", child.Path, err)
	}
	children, err := dbexec.ScanSections(rows, []planner.Section{{Columns: child.Relation.Columns}})
	if err != nil {
		return err
	}

	grouped := make(map[any][]map[string]any, len(children))
	for _, record := range children {
		key := record[child.Relation.RemoteColumn]
		grouped[key] = append(grouped[key], record)
	}
	for _, parent := range parents {
		if members, ok := grouped[parent[child.Relation.LocalColumn]]; ok {
			parent[name] = members
		}
	}
	return nil
}

// runStatsFunction executes a stored aggregation function and returns its
// rows as-is.
func (s *Server) runStatsFunction(ctx context.Context, resource, function string) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s()", function)
	start := time.Now()
	rows, err := s.exec.QueryContext(ctx, query)
	observability.ObserveQuery(resource, "stats", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", function, err)
	}
	return dbexec.ScanGeneric(rows)
}
