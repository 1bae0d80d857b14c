package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportsSequence = `CREATE SEQUENCE IF NOT EXISTS reports_seq;`

const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		seq BIGINT NOT NULL DEFAULT nextval('reports_seq'),
		id VARCHAR PRIMARY KEY,
		title VARCHAR NOT NULL DEFAULT '',
		type VARCHAR NOT NULL DEFAULT '',
		frameworks VARCHAR NOT NULL DEFAULT '[]',
		description VARCHAR NOT NULL DEFAULT '',
		kpis VARCHAR NOT NULL DEFAULT '[]',
		analysis VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL DEFAULT '',
		submission_date VARCHAR NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		documents VARCHAR NOT NULL DEFAULT '{}'
	);
`

const ProjectsSequence = `CREATE SEQUENCE IF NOT EXISTS projects_seq;`

const ProjectsTableSchema = `
	CREATE TABLE IF NOT EXISTS projects (
		seq BIGINT NOT NULL DEFAULT nextval('projects_seq'),
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL
	);
`

const DraftsTableSchema = `
	CREATE TABLE IF NOT EXISTS report_drafts (
		session_id VARCHAR PRIMARY KEY,
		title VARCHAR NOT NULL DEFAULT '',
		type VARCHAR NOT NULL DEFAULT '',
		frameworks VARCHAR NOT NULL DEFAULT '[]',
		description VARCHAR NOT NULL DEFAULT '',
		kpis VARCHAR NOT NULL DEFAULT '[]',
		analysis VARCHAR NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	ReportsSequence,
	ReportsTableSchema,
	ProjectsSequence,
	ProjectsTableSchema,
	DraftsTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database at settings.DbPath and creates the schema on every
// new connection. Use ":memory:" for a throwaway database.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			if _, err := exec.ExecContext(context.Background(), query, nil); err != nil {
				return fmt.Errorf("boot schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}
