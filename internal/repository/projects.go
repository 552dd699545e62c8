package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/entity"
)

// The emissions profile is not derived from the document; source material
// rarely carries per-scope figures. Rows are written with this placeholder
// and a data_source marking them machine-derived, not document-verified.
var defaultEmissionsProfile = map[string]float64{
	"Scope 1": 0,
	"Scope 2": 0.05,
	"Scope 3": 0,
}

const nlpDataSource = "Extracted via NLP"

// ProjectRepository owns the write transaction boundary for the three
// project tables. No other component writes these entities.
type ProjectRepository interface {
	SaveExtraction(ctx context.Context, fields entity.FieldMap) (int64, error)
	GetProject(ctx context.Context, id int64) (*entity.Project, error)
	GetFinancial(ctx context.Context, projectID int64) (*entity.FinancialData, error)
	GetEnvironmental(ctx context.Context, projectID int64) (*entity.EnvironmentalData, error)
	ListRecords(ctx context.Context) ([]*entity.ProjectRecord, error)
}

type projectRepository struct {
	db     *DB
	logger *slog.Logger

	// test seam: runs inside the transaction, before the environmental insert
	beforeEnvironmental func(ctx context.Context, tx *sql.Tx) error
}

func NewProjectRepository(db *DB, logger *slog.Logger) ProjectRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &projectRepository{db: db, logger: logger}
}

// SaveExtraction writes one project, one financial and one environmental row
// in a single transaction. Any failure rolls all three back; the deferred
// rollback is a no-op once the commit has landed.
func (r *projectRepository) SaveExtraction(ctx context.Context, fields entity.FieldMap) (int64, error) {
	if len(fields) == 0 {
		return 0, common.NewPersistenceError("empty field map", nil)
	}

	ctx, cancel := common.WithTimeout(ctx, r.db.txTimeout)
	defer cancel()

	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, common.NewPersistenceError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	projectID, err := r.insertProject(ctx, tx, fields)
	if err != nil {
		r.logger.Error("persist.rollback", "stage", "project", "error", err)
		return 0, common.NewPersistenceError("insert project", err)
	}

	if err := r.insertFinancial(ctx, tx, projectID, fields); err != nil {
		r.logger.Error("persist.rollback", "stage", "financial", "project_id", projectID, "error", err)
		return 0, common.NewPersistenceError("insert financial data", err)
	}

	if r.beforeEnvironmental != nil {
		if err := r.beforeEnvironmental(ctx, tx); err != nil {
			r.logger.Error("persist.rollback", "stage", "environmental", "project_id", projectID, "error", err)
			return 0, common.NewPersistenceError("insert environmental data", err)
		}
	}
	if err := r.insertEnvironmental(ctx, tx, projectID, fields); err != nil {
		r.logger.Error("persist.rollback", "stage", "environmental", "project_id", projectID, "error", err)
		return 0, common.NewPersistenceError("insert environmental data", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("persist.rollback", "stage", "commit", "project_id", projectID, "error", err)
		return 0, common.NewPersistenceError("commit transaction", err)
	}

	r.logger.Info("persist.ok", "project_id", projectID)
	return projectID, nil
}

// insertProject creates the identity row and returns its id before the
// enclosing transaction commits, so dependents can reference it.
func (r *projectRepository) insertProject(ctx context.Context, tx *sql.Tx, fields entity.FieldMap) (int64, error) {
	args := []any{
		textValue(fields, constants.FieldProjectName),
		textValue(fields, constants.FieldSector),
		textValue(fields, constants.FieldCountry),
		textValue(fields, constants.FieldRegion),
		textValue(fields, constants.FieldStatus),
		dateValue(fields, constants.FieldStartDate),
		dateValue(fields, constants.FieldEndDate),
		textValue(fields, constants.FieldDescription),
	}

	if r.db.dialect == DialectPostgres {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO projects (project_name, sector, country, region, status, start_date, end_date, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`, args...).Scan(&id)
		return id, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO projects (project_name, sector, country, region, status, start_date, end_date, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *projectRepository) insertFinancial(ctx context.Context, tx *sql.Tx, projectID int64, fields entity.FieldMap) error {
	currency, ok := fields.String(constants.FieldCurrency)
	if !ok {
		currency = "USD"
	}

	_, err := tx.ExecContext(ctx, r.rebind(
		`INSERT INTO financial_data (project_id, capex, opex, irr, npv, currency)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		projectID,
		numericValue(fields, constants.FieldCapex),
		textValue(fields, constants.FieldOpex),
		numericValue(fields, constants.FieldIRR),
		numericValue(fields, constants.FieldNPV),
		currency,
	)
	return err
}

func (r *projectRepository) insertEnvironmental(ctx context.Context, tx *sql.Tx, projectID int64, fields entity.FieldMap) error {
	profile, err := json.Marshal(defaultEmissionsProfile)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, r.rebind(
		`INSERT INTO environmental_data (project_id, co2e_reduction, carbon_intensity, lifecycle_emissions, emissions_profile, data_source)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		projectID,
		textValue(fields, constants.FieldCO2eReduction),
		textValue(fields, constants.FieldCarbonIntensity),
		textValue(fields, constants.FieldLifecycleEmissions),
		string(profile),
		nlpDataSource,
	)
	return err
}
