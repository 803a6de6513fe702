package db

import (
	"context"
	"fmt"
	"time"
)

// Commit runs the given parameterized statements in one transaction.
func (d *DB) Commit(queries []string, allArgs [][]interface{}) error {
	if len(queries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := d.Conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for i, q := range queries {
		var args []interface{}
		if i < len(allArgs) {
			args = allArgs[i]
		}
		if _, err := tx.Exec(ctx, q, args...); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("exec: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
