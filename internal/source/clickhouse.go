// Package source implements the input-sourcing side of the "e.g. a
// database column" framing: pulling a column's values from a file, stdin,
// or a ClickHouse table, as a plain []string ready for Profile.
package source

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseConfig names the table/column to pull values from.
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
	Table    string
	Column   string
	Limit    int
}

// ClickHouseColumn connects to ClickHouse, runs "SELECT column FROM table
// LIMIT n", and returns every row's value as a string.
func ClickHouseColumn(ctx context.Context, cfg ClickHouseConfig) ([]string, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return queryColumn(ctx, conn, cfg)
}

func queryColumn(ctx context.Context, conn driver.Conn, cfg ClickHouseConfig) ([]string, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 100000
	}
	query := fmt.Sprintf("SELECT toString(%s) FROM %s LIMIT %d", cfg.Column, cfg.Table, limit)

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
