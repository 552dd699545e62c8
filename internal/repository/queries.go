package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/zalahu/EnergyZ/internal/entity"
)

// rebind converts ? placeholders to $n for the postgres dialect.
func (r *projectRepository) rebind(query string) string {
	if r.db.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *projectRepository) GetProject(ctx context.Context, id int64) (*entity.Project, error) {
	row := r.db.sql.QueryRowContext(ctx, r.rebind(
		`SELECT id, project_name, sector, country, region, status, start_date, end_date, description, created_at
		 FROM projects WHERE id = ?`), id)
	return scanProject(row)
}

func (r *projectRepository) GetFinancial(ctx context.Context, projectID int64) (*entity.FinancialData, error) {
	row := r.db.sql.QueryRowContext(ctx, r.rebind(
		`SELECT id, project_id, capex, opex, irr, npv, currency
		 FROM financial_data WHERE project_id = ?`), projectID)

	var (
		fin   entity.FinancialData
		capex sql.NullFloat64
		opex  sql.NullString
		irr   sql.NullFloat64
		npv   sql.NullFloat64
	)
	if err := row.Scan(&fin.ID, &fin.ProjectID, &capex, &opex, &irr, &npv, &fin.Currency); err != nil {
		return nil, err
	}
	fin.Capex = nullFloat(capex)
	fin.Opex = nullStr(opex)
	fin.IRR = nullFloat(irr)
	fin.NPV = nullFloat(npv)
	return &fin, nil
}

func (r *projectRepository) GetEnvironmental(ctx context.Context, projectID int64) (*entity.EnvironmentalData, error) {
	row := r.db.sql.QueryRowContext(ctx, r.rebind(
		`SELECT id, project_id, co2e_reduction, carbon_intensity, lifecycle_emissions, emissions_profile, data_source
		 FROM environmental_data WHERE project_id = ?`), projectID)

	var (
		env       entity.EnvironmentalData
		co2e      sql.NullString
		intensity sql.NullString
		lifecycle sql.NullString
		profile   sql.NullString
	)
	if err := row.Scan(&env.ID, &env.ProjectID, &co2e, &intensity, &lifecycle, &profile, &env.DataSource); err != nil {
		return nil, err
	}
	env.CO2eReduction = nullStr(co2e)
	env.CarbonIntensity = nullStr(intensity)
	env.LifecycleEmissions = nullStr(lifecycle)
	if profile.Valid {
		if err := json.Unmarshal([]byte(profile.String), &env.EmissionsProfile); err != nil {
			return nil, fmt.Errorf("decode emissions profile: %w", err)
		}
	}
	return &env, nil
}

// ListRecords returns every project joined with its dependent rows, newest
// first, for export.
func (r *projectRepository) ListRecords(ctx context.Context) ([]*entity.ProjectRecord, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT id FROM projects ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]*entity.ProjectRecord, 0, len(ids))
	for _, id := range ids {
		proj, err := r.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		rec := &entity.ProjectRecord{Project: *proj}
		if fin, err := r.GetFinancial(ctx, id); err == nil {
			rec.Financial = fin
		} else if err != sql.ErrNoRows {
			return nil, err
		}
		if env, err := r.GetEnvironmental(ctx, id); err == nil {
			rec.Environmental = env
		} else if err != sql.ErrNoRows {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var (
		p         entity.Project
		name      sql.NullString
		sector    sql.NullString
		country   sql.NullString
		region    sql.NullString
		status    sql.NullString
		startDate sql.NullString
		endDate   sql.NullString
		desc      sql.NullString
		createdAt any
	)
	if err := row.Scan(&p.ID, &name, &sector, &country, &region, &status, &startDate, &endDate, &desc, &createdAt); err != nil {
		return nil, err
	}
	p.Name = nullStr(name)
	p.Sector = nullStr(sector)
	p.Country = nullStr(country)
	p.Region = nullStr(region)
	p.Status = nullStr(status)
	p.StartDate = nullDate(startDate)
	p.EndDate = nullDate(endDate)
	p.Description = nullStr(desc)
	// sqlite stores created_at as ISO text, postgres hands back time.Time
	switch t := createdAt.(type) {
	case time.Time:
		p.CreatedAt = t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			p.CreatedAt = parsed
		}
	case []byte:
		if parsed, err := time.Parse(time.RFC3339, string(t)); err == nil {
			p.CreatedAt = parsed
		}
	}
	return &p, nil
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullDate(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse("2006-01-02", v.String)
	if err != nil {
		return nil
	}
	return &t
}
