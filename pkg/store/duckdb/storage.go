package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ScanHistorySchema = `
	CREATE TABLE IF NOT EXISTS scan_history (
		id VARCHAR NOT NULL,
		subscription VARCHAR NOT NULL,
		scan_scope VARCHAR NOT NULL,
		overall_risk VARCHAR NOT NULL,
		finding_count INTEGER NOT NULL,
		sensitive_count INTEGER NOT NULL,
		security_finding_count INTEGER NOT NULL,
		recommendation_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (id)
	);
`

var bootQueries = []string{
	ScanHistorySchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=2", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
