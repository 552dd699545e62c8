package llm

import "github.com/zalahu/EnergyZ/constants"

// BuildProjectJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The sanitizer removes unknown keys first, so the schema can
// keep additionalProperties = false; every field is optional — a document
// that names only a project and a capex figure is still a valid extraction.
func BuildProjectJSONSchema() map[string]any {
	datePattern := `^\d{4}-\d{2}-\d{2}$`

	props := map[string]any{
		constants.FieldProjectName:        map[string]any{"type": "string", "minLength": 1},
		constants.FieldSector:             map[string]any{"type": "string"},
		constants.FieldCountry:            map[string]any{"type": "string"},
		constants.FieldRegion:             map[string]any{"type": "string"},
		constants.FieldStatus:             map[string]any{"type": "string"},
		constants.FieldStartDate:          map[string]any{"type": "string", "pattern": datePattern},
		constants.FieldEndDate:            map[string]any{"type": "string", "pattern": datePattern},
		constants.FieldDescription:        map[string]any{"type": "string"},
		constants.FieldCapex:              map[string]any{"type": "number"},
		constants.FieldOpex:               map[string]any{"type": "string"},
		constants.FieldIRR:                map[string]any{"type": "number"},
		constants.FieldNPV:                map[string]any{"type": "number"},
		constants.FieldCO2eReduction:      map[string]any{"type": "string"},
		constants.FieldCarbonIntensity:    map[string]any{"type": "string"},
		constants.FieldLifecycleEmissions: map[string]any{"type": "string"},
		constants.FieldCurrency:           map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
