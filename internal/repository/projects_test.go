package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/entity"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, Config{
		DSN:         filepath.Join(t.TempDir(), "test.db"),
		DialTimeout: 3 * time.Second,
		TxTimeout:   5 * time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(nil) })

	require.NoError(t, Migrate(ctx, db, nil))
	return db
}

func sampleFields() entity.FieldMap {
	return entity.FieldMap{
		constants.FieldProjectName:   "Solar Farm Expansion",
		constants.FieldSector:        "Renewable Energy",
		constants.FieldCountry:       "Kenya",
		constants.FieldStatus:        "Active",
		constants.FieldStartDate:     "2026-01-15",
		constants.FieldEndDate:       "2028-06-30",
		constants.FieldCapex:         float64(5000000),
		constants.FieldOpex:          "120k-150k per year",
		constants.FieldIRR:           float64(12.5),
		constants.FieldNPV:           float64(1200000),
		constants.FieldCO2eReduction: "45,000 tCO2e/yr",
	}
}

func TestSaveExtractionWritesAllThreeTables(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t), nil)

	id, err := repo.SaveExtraction(ctx, sampleFields())
	require.NoError(t, err)
	require.Positive(t, id)

	proj, err := repo.GetProject(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, proj.Name)
	assert.Equal(t, "Solar Farm Expansion", *proj.Name)
	require.NotNil(t, proj.Status)
	assert.Equal(t, "Active", *proj.Status)
	require.NotNil(t, proj.StartDate)
	assert.Equal(t, "2026-01-15", proj.StartDate.Format("2006-01-02"))
	assert.False(t, proj.CreatedAt.IsZero())

	fin, err := repo.GetFinancial(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, fin.ProjectID)
	require.NotNil(t, fin.Capex)
	assert.Equal(t, float64(5000000), *fin.Capex)
	require.NotNil(t, fin.Opex)
	assert.Equal(t, "120k-150k per year", *fin.Opex)
	require.NotNil(t, fin.IRR)
	assert.Equal(t, 12.5, *fin.IRR)

	env, err := repo.GetEnvironmental(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, env.ProjectID)
	require.NotNil(t, env.CO2eReduction)
	assert.Equal(t, "45,000 tCO2e/yr", *env.CO2eReduction)
	assert.Equal(t, "Extracted via NLP", env.DataSource)
	assert.Equal(t, map[string]float64{"Scope 1": 0, "Scope 2": 0.05, "Scope 3": 0}, env.EmissionsProfile)
}

func TestSaveExtractionCurrencyDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t), nil)

	id, err := repo.SaveExtraction(ctx, entity.FieldMap{
		constants.FieldProjectName: "Wind Project",
	})
	require.NoError(t, err)

	fin, err := repo.GetFinancial(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "USD", fin.Currency)
}

func TestSaveExtractionCurrencyFromFields(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t), nil)

	fields := sampleFields()
	fields[constants.FieldCurrency] = "EUR"
	id, err := repo.SaveExtraction(ctx, fields)
	require.NoError(t, err)

	fin, err := repo.GetFinancial(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "EUR", fin.Currency)
}

func TestSaveExtractionUnparseableValuesStoredNull(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t), nil)

	id, err := repo.SaveExtraction(ctx, entity.FieldMap{
		constants.FieldProjectName: "Hydro Plant",
		constants.FieldCapex:       "approximately five million",
		constants.FieldStartDate:   "mid 2026",
	})
	require.NoError(t, err)

	proj, err := repo.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, proj.StartDate)

	fin, err := repo.GetFinancial(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, fin.Capex)
}

func TestSaveExtractionEmptyFieldsRejected(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t), nil)

	_, err := repo.SaveExtraction(context.Background(), entity.FieldMap{})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindPersistence))
}

func TestSaveExtractionRollsBackAllTables(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProjectRepository(db, nil).(*projectRepository)
	repo.beforeEnvironmental = func(context.Context, *sql.Tx) error {
		return errors.New("forced failure")
	}

	_, err := repo.SaveExtraction(ctx, sampleFields())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindPersistence))

	for _, table := range []string{"projects", "financial_data", "environmental_data"} {
		var n int
		require.NoError(t, db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}

func TestListRecordsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t), nil)

	first := sampleFields()
	second := sampleFields()
	second[constants.FieldProjectName] = "Offshore Wind Phase 2"

	id1, err := repo.SaveExtraction(ctx, first)
	require.NoError(t, err)
	id2, err := repo.SaveExtraction(ctx, second)
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	records, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id2, records[0].Project.ID)
	assert.Equal(t, "Offshore Wind Phase 2", *records[0].Project.Name)
	require.NotNil(t, records[0].Financial)
	require.NotNil(t, records[0].Environmental)
	assert.Equal(t, id2, records[0].Financial.ProjectID)
}

func TestRebindPostgresPlaceholders(t *testing.T) {
	r := &projectRepository{db: &DB{dialect: DialectPostgres}}
	assert.Equal(t,
		"INSERT INTO t (a, b) VALUES ($1, $2)",
		r.rebind("INSERT INTO t (a, b) VALUES (?, ?)"))

	r.db.dialect = DialectSQLite
	assert.Equal(t, "SELECT * FROM t WHERE id = ?", r.rebind("SELECT * FROM t WHERE id = ?"))
}

func TestHealthCheck(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.HealthCheck(context.Background(), time.Second))
	assert.Equal(t, DialectSQLite, db.Dialect())
}
