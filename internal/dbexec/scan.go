package dbexec

import (
	"database/sql"
	"fmt"

	"ancine-api/internal/catalog"
	"ancine-api/internal/planner"
)

// dateLayout is the wire format for date columns in JSON payloads.
const dateLayout = "2006-01-02"

// ScanSections reads every row of a sectioned page query, rebuilding one map
// per row with joined relations nested under their path. A relation whose
// primary key scanned NULL (an unmatched left join) yields a nil payload
// rather than an object of nulls.
func ScanSections(rows Rows, sections []planner.Section) ([]map[string]any, error) {
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		targets := make([]any, 0, 16)
		holders := make([][]any, len(sections))
		for i, section := range sections {
			holders[i] = make([]any, len(section.Columns))
			for j, col := range section.Columns {
				holders[i][j] = newScanTarget(col.Type)
				targets = append(targets, holders[i][j])
			}
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning page row: %w", err)
		}

		record := make(map[string]any, len(sections[0].Columns))
		for j, col := range sections[0].Columns {
			record[col.Name] = scanValue(holders[0][j])
		}
		for i, section := range sections[1:] {
			attachSection(record, section, holders[i+1])
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading page rows: %w", err)
	}
	return out, nil
}

// attachSection places one relation's scanned columns at its nested path.
// Intermediate payloads that resolved to nil swallow the deeper section.
func attachSection(record map[string]any, section planner.Section, holder []any) {
	parent := record
	for _, segment := range section.Path[:len(section.Path)-1] {
		next, ok := parent[segment].(map[string]any)
		if !ok {
			return
		}
		parent = next
	}

	name := section.Path[len(section.Path)-1]
	if pkNull(section, holder) {
		parent[name] = nil
		return
	}
	payload := make(map[string]any, len(section.Columns))
	for j, col := range section.Columns {
		payload[col.Name] = scanValue(holder[j])
	}
	parent[name] = payload
}

func pkNull(section planner.Section, holder []any) bool {
	for j, col := range section.Columns {
		if col.PrimaryKey {
			return scanValue(holder[j]) == nil
		}
	}
	return false
}

func newScanTarget(t catalog.FieldType) any {
	switch t {
	case catalog.TypeInt:
		return &sql.NullInt64{}
	case catalog.TypeFloat:
		return &sql.NullFloat64{}
	case catalog.TypeBool:
		return &sql.NullBool{}
	case catalog.TypeDate:
		return &sql.NullTime{}
	default:
		return &sql.NullString{}
	}
}

func scanValue(target any) any {
	switch v := target.(type) {
	case *sql.NullInt64:
		if v.Valid {
			return v.Int64
		}
	case *sql.NullFloat64:
		if v.Valid {
			return v.Float64
		}
	case *sql.NullBool:
		if v.Valid {
			return v.Bool
		}
	case *sql.NullTime:
		if v.Valid {
			return v.Time.Format(dateLayout)
		}
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	}
	return nil
}

// ScanGeneric reads rows whose shape is only known at runtime, such as the
// result of a stored aggregation function. Byte slices become strings so the
// result serializes as JSON text instead of base64.
func ScanGeneric(rows Rows) ([]map[string]any, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	out := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		record := make(map[string]any, len(columns))
		for i, name := range columns {
			if b, ok := values[i].([]byte); ok {
				record[name] = string(b)
				continue
			}
			record[name] = values[i]
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading result rows: %w", err)
	}
	return out, nil
}
