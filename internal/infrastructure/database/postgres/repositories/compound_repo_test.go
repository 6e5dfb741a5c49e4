package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	"github.com/turtacn/stilbar/pkg/types/common"
)

var compoundCols = []string{"hash", "seq", "name", "code", "normalized_code", "smiles"}

func newTestRepo(t *testing.T) (*CompoundRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := &CompoundRepository{db: db, logger: logging.NewNopLogger()}
	return repo, mock, func() { db.Close() }
}

func testCompound(t *testing.T) *compound.Compound {
	t.Helper()
	c, err := compound.New(1, "Quadrangularin A", "T=37.48=T", "OC1=CC=CC=C1")
	require.NoError(t, err)
	return c
}

func TestSave(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	c := testCompound(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO compounds")).
		WithArgs(c.Hash, c.Seq, c.Name, c.Code, c.NormalizedCode, c.SMILES).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_Duplicate(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	c := testCompound(t)

	// ON CONFLICT DO NOTHING reports zero affected rows for duplicates.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO compounds")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), c)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeCompoundAlreadyExists))
}

func TestGetByHash(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	c := testCompound(t)

	mock.ExpectQuery("SELECT (.+) FROM compounds WHERE hash").
		WithArgs(c.Hash).
		WillReturnRows(sqlmock.NewRows(compoundCols).
			AddRow(c.Hash, c.Seq, c.Name, c.Code, c.NormalizedCode, c.SMILES))

	got, err := repo.GetByHash(context.Background(), c.Hash)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.NormalizedCode, got.NormalizedCode)
}

func TestGetByHash_NotFound(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM compounds WHERE hash").
		WithArgs("deadbeef").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByHash(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestGetByCode(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	c := testCompound(t)

	mock.ExpectQuery("SELECT (.+) FROM compounds").
		WithArgs(c.NormalizedCode).
		WillReturnRows(sqlmock.NewRows(compoundCols).
			AddRow(c.Hash, c.Seq, c.Name, c.Code, c.NormalizedCode, c.SMILES))

	got, err := repo.GetByCode(context.Background(), c.NormalizedCode)
	require.NoError(t, err)
	assert.Equal(t, c.Hash, got.Hash)
}

func TestList(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	c := testCompound(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM compounds")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(62))
	mock.ExpectQuery("SELECT (.+) FROM compounds").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(compoundCols).
			AddRow(c.Hash, c.Seq, c.Name, c.Code, c.NormalizedCode, c.SMILES))

	page, total, err := repo.List(context.Background(), common.Pagination{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 62, total)
	require.Len(t, page, 1)
	assert.Equal(t, c.Hash, page[0].Hash)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM compounds").
		WithArgs("deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestStats(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"total", "with", "without"}).
			AddRow(62, 60, 2))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 62, stats.Total)
	assert.Equal(t, 60, stats.WithCode)
	assert.Equal(t, 2, stats.WithoutCode)
}

func TestSeedIfEmpty_SkipsNonEmpty(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM compounds")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(62))

	inserted, err := repo.SeedIfEmpty(context.Background(), compound.Seed())
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedIfEmpty_Seeds(t *testing.T) {
	repo, mock, cleanup := newTestRepo(t)
	defer cleanup()
	seed := compound.Seed()[:3]

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM compounds")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for range seed {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO compounds")).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	inserted, err := repo.SeedIfEmpty(context.Background(), seed)
	require.NoError(t, err)
	assert.Equal(t, len(seed), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
