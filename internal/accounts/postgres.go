// Package accounts provides the account directory lookup used by the
// eligibility evaluator: how many accounts already hold a given address as
// verified. Account storage itself is owned elsewhere; this package only
// reads.
package accounts

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresDirectory answers verified-address counts against PostgreSQL.
type PostgresDirectory struct{ db *sql.DB }

// NewPostgresDirectory creates a Postgres-backed account directory.
func NewPostgresDirectory(db *sql.DB) *PostgresDirectory { return &PostgresDirectory{db: db} }

// CountVerified returns the number of accounts where this exact address is
// already verified. The match is exact; case folding is the registration
// flow's concern, not this lookup's.
func (d *PostgresDirectory) CountVerified(ctx context.Context, address string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM account_emails WHERE email = $1 AND verified = true`,
		address,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count verified addresses: %w", err)
	}
	return n, nil
}
