package entity

import "time"

// Project represents a project identity record for data transfer between layers.
type Project struct {
	ID          int64      `json:"id"`
	Name        *string    `json:"name,omitempty"`
	Sector      *string    `json:"sector,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Region      *string    `json:"region,omitempty"`
	Status      *string    `json:"status,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FinancialData is one-to-one with Project.
type FinancialData struct {
	ID        int64    `json:"id"`
	ProjectID int64    `json:"project_id"`
	Capex     *float64 `json:"capex,omitempty"`
	Opex      *string  `json:"opex,omitempty"` // free text; source documents give ranges/narratives
	IRR       *float64 `json:"irr,omitempty"`
	NPV       *float64 `json:"npv,omitempty"`
	Currency  string   `json:"currency"`
}

// EnvironmentalData is one-to-one with Project.
type EnvironmentalData struct {
	ID                 int64              `json:"id"`
	ProjectID          int64              `json:"project_id"`
	CO2eReduction      *string            `json:"co2e_reduction,omitempty"`
	CarbonIntensity    *string            `json:"carbon_intensity,omitempty"`
	LifecycleEmissions *string            `json:"lifecycle_emissions,omitempty"`
	EmissionsProfile   map[string]float64 `json:"emissions_profile"`
	DataSource         string             `json:"data_source"`
}

// ProjectRecord joins a project with its dependent rows.
type ProjectRecord struct {
	Project       Project            `json:"project"`
	Financial     *FinancialData     `json:"financial,omitempty"`
	Environmental *EnvironmentalData `json:"environmental,omitempty"`
}
