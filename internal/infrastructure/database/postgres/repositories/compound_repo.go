// Package repositories holds the PostgreSQL implementations of the domain
// repository interfaces.
package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/database/postgres"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	"github.com/turtacn/stilbar/pkg/types/common"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

const compoundColumns = "hash, seq, name, code, normalized_code, smiles"

// CompoundRepository is the PostgreSQL implementation of
// compound.Repository.
type CompoundRepository struct {
	db     queryExecutor
	logger logging.Logger
}

// NewCompoundRepository constructs a CompoundRepository on top of an open
// connection.
func NewCompoundRepository(conn *postgres.Connection, log logging.Logger) *CompoundRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &CompoundRepository{db: conn.DB(), logger: log.Named("compound_repo")}
}

// Save inserts a compound.  Returns a Conflict error when a compound with
// the same hash already exists.
func (r *CompoundRepository) Save(ctx context.Context, c *compound.Compound) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO compounds (hash, seq, name, code, normalized_code, smiles)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (hash) DO NOTHING`,
		c.Hash, c.Seq, c.Name, c.Code, c.NormalizedCode, c.SMILES,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to insert compound")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read insert result")
	}
	if affected == 0 {
		return errors.New(errors.CodeCompoundAlreadyExists, "compound already exists").
			WithDetail("hash=" + c.Hash)
	}
	return nil
}

// GetByHash returns the compound with the given hash ID.
func (r *CompoundRepository) GetByHash(ctx context.Context, hash string) (*compound.Compound, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+compoundColumns+` FROM compounds WHERE hash = $1`, hash)
	return scanCompound(row, "hash="+hash)
}

// GetByCode returns the compound whose normalized code matches.  When
// several rows share a code the highest sequence number wins, matching the
// in-memory index.
func (r *CompoundRepository) GetByCode(ctx context.Context, normalizedCode string) (*compound.Compound, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+compoundColumns+` FROM compounds
		WHERE normalized_code = $1
		ORDER BY seq DESC
		LIMIT 1`, normalizedCode)
	return scanCompound(row, "code="+normalizedCode)
}

// List returns one page of compounds ordered by sequence number, plus the
// total count.
func (r *CompoundRepository) List(ctx context.Context, p common.Pagination) ([]*compound.Compound, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM compounds`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to count compounds")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+compoundColumns+` FROM compounds
		ORDER BY seq
		LIMIT $1 OFFSET $2`,
		p.PageSize, (p.Page-1)*p.PageSize,
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to list compounds")
	}
	defer rows.Close()

	compounds, err := collectCompounds(rows)
	if err != nil {
		return nil, 0, err
	}
	return compounds, total, nil
}

// All returns every compound ordered by sequence number.
func (r *CompoundRepository) All(ctx context.Context) ([]*compound.Compound, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+compoundColumns+` FROM compounds ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load compounds")
	}
	defer rows.Close()
	return collectCompounds(rows)
}

// Delete removes the compound with the given hash.
func (r *CompoundRepository) Delete(ctx context.Context, hash string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM compounds WHERE hash = $1`, hash)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete compound")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to read delete result")
	}
	if affected == 0 {
		return errors.New(errors.CodeCompoundNotFound, "compound not found").
			WithDetail("hash=" + hash)
	}
	return nil
}

// Stats returns library counts.
func (r *CompoundRepository) Stats(ctx context.Context) (ctypes.LibraryStats, error) {
	var stats ctypes.LibraryStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE code <> ''),
		       COUNT(*) FILTER (WHERE code = '')
		FROM compounds`).
		Scan(&stats.Total, &stats.WithCode, &stats.WithoutCode)
	if err != nil {
		return ctypes.LibraryStats{}, errors.Wrap(err, errors.CodeDatabaseError, "failed to compute library stats")
	}
	return stats, nil
}

// SeedIfEmpty loads the curated library into an empty compounds table.
// A non-empty table is left untouched so curator edits survive restarts.
func (r *CompoundRepository) SeedIfEmpty(ctx context.Context, compounds []*compound.Compound) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM compounds`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to count compounds")
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, c := range compounds {
		if err := r.Save(ctx, c); err != nil {
			if errors.IsCode(err, errors.CodeCompoundAlreadyExists) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	r.logger.Info("seeded compound library", logging.Int("inserted", inserted))
	return inserted, nil
}

func scanCompound(row *sql.Row, detail string) (*compound.Compound, error) {
	var c compound.Compound
	err := row.Scan(&c.Hash, &c.Seq, &c.Name, &c.Code, &c.NormalizedCode, &c.SMILES)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.CodeCompoundNotFound, "compound not found").WithDetail(detail)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan compound")
	}
	return &c, nil
}

func collectCompounds(rows *sql.Rows) ([]*compound.Compound, error) {
	var out []*compound.Compound
	for rows.Next() {
		var c compound.Compound
		if err := rows.Scan(&c.Hash, &c.Seq, &c.Name, &c.Code, &c.NormalizedCode, &c.SMILES); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to scan compound")
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to iterate compounds")
	}
	return out, nil
}
