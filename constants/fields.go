package constants

// Canonical field names produced by extraction. These exact strings are the
// keys of a FieldMap and the property names of the extraction JSON schema.
const (
	FieldProjectName        = "Project Name"
	FieldSector             = "Sector"
	FieldCountry            = "Country"
	FieldRegion             = "Region"
	FieldStatus             = "Status"
	FieldStartDate          = "Start Date"
	FieldEndDate            = "End Date"
	FieldDescription        = "Description"
	FieldCapex              = "Capex"
	FieldOpex               = "Opex"
	FieldIRR                = "IRR"
	FieldNPV                = "NPV"
	FieldCO2eReduction      = "CO2e Reduction"
	FieldCarbonIntensity    = "Carbon Intensity"
	FieldLifecycleEmissions = "Lifecycle Emissions"
	FieldCurrency           = "Currency"
)

// ExtractedFields lists the fields the model is asked to extract, in the
// order they appear in the prompt. Currency is accepted but not requested.
var ExtractedFields = []string{
	FieldProjectName,
	FieldSector,
	FieldCountry,
	FieldRegion,
	FieldStatus,
	FieldStartDate,
	FieldEndDate,
	FieldDescription,
	FieldCapex,
	FieldOpex,
	FieldIRR,
	FieldNPV,
	FieldCO2eReduction,
	FieldCarbonIntensity,
	FieldLifecycleEmissions,
}

// AllowedFields is the allowlist the response sanitizer enforces.
var AllowedFields = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ExtractedFields)+1)
	for _, f := range ExtractedFields {
		m[f] = struct{}{}
	}
	m[FieldCurrency] = struct{}{}
	return m
}()

// NumericFields hold numeric values in the persisted schema.
var NumericFields = []string{FieldCapex, FieldIRR, FieldNPV}

// TextFields hold free-text values; numeric model output is stringified.
var TextFields = []string{
	FieldProjectName, FieldSector, FieldCountry, FieldRegion, FieldStatus,
	FieldStartDate, FieldEndDate, FieldDescription, FieldOpex,
	FieldCO2eReduction, FieldCarbonIntensity, FieldLifecycleEmissions,
}
