package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// column describes one column as reported by PRAGMA table_info.
type column struct {
	Name    string
	Type    string
	NotNull bool
	PK      bool
}

// expectedTables is the column layout schema.sql creates.
var expectedTables = map[string][]column{
	"name": {
		{Name: "name_id", Type: "INTEGER", PK: true},
		{Name: "name_title", Type: "TEXT", NotNull: true},
	},
	"workers": {
		{Name: "worker_id", Type: "INTEGER", PK: true},
		{Name: "worker_name", Type: "TEXT", NotNull: true},
		{Name: "name_id", Type: "INTEGER", NotNull: true},
		{Name: "zodiac", Type: "TEXT", NotNull: true},
		{Name: "worker_year", Type: "INTEGER", NotNull: true},
	},
}

// checkSchema compares every registry table already present in db with
// expectedTables. Missing tables are fine (they are about to be created);
// present tables must match column for column.
func checkSchema(ctx context.Context, db *sql.DB) error {
	names := make([]string, 0, len(expectedTables))
	for name := range expectedTables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, table := range names {
		got, err := tableColumns(ctx, db, table)
		if err != nil {
			return fmt.Errorf("%w: inspect table %s: %w", ErrStoreAccess, table, err)
		}
		if len(got) == 0 {
			continue
		}
		if err := compareColumns(table, expectedTables[table], got); err != nil {
			return err
		}
	}
	return nil
}

// tableColumns returns the columns of table, or nil if it does not exist.
func tableColumns(ctx context.Context, db *sql.DB, table string) ([]column, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var (
			cid     int
			c       column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &c.Name, &c.Type, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		c.Type = strings.ToUpper(c.Type)
		c.NotNull = notNull != 0
		c.PK = pk != 0
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (c column) String() string {
	s := c.Type
	if c.NotNull {
		s += " NOT NULL"
	}
	if c.PK {
		s += " PRIMARY KEY"
	}
	return s
}

func compareColumns(table string, want, got []column) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: table %s has %d columns, expected %d",
			ErrSchemaMismatch, table, len(got), len(want))
	}

	byName := make(map[string]column, len(got))
	for _, c := range got {
		byName[c.Name] = c
	}

	for _, w := range want {
		g, ok := byName[w.Name]
		if !ok {
			return fmt.Errorf("%w: table %s is missing column %s", ErrSchemaMismatch, table, w.Name)
		}
		if g.Type != w.Type || g.PK != w.PK || g.NotNull != w.NotNull {
			return fmt.Errorf("%w: table %s column %s is %s, expected %s",
				ErrSchemaMismatch, table, w.Name, g, w)
		}
	}
	return nil
}
