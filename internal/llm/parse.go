package llm

import (
	"encoding/json"
	"log/slog"

	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/entity"
)

// ParseFields converts the model's raw textual response into a FieldMap.
// The response is only ever decoded as JSON — never evaluated — and must be
// a JSON object; anything else is a parse failure. Unknown keys are dropped,
// missing fields simply stay absent, and the sanitized object is validated
// against the extraction schema before it is returned.
func ParseFields(raw []byte, logger *slog.Logger) (entity.FieldMap, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, common.NewParseError("response is not a JSON object", err)
	}

	sanitizeFieldMap(m, logger)

	cleaned, err := json.Marshal(m)
	if err != nil {
		return nil, common.NewParseError("re-encode sanitized response", err)
	}
	if err := ValidateJSONAgainstSchema(BuildProjectJSONSchema(), cleaned); err != nil {
		return nil, common.NewParseError("response does not match extraction schema", err)
	}

	logger.Info("llm.parse.ok", "fields", len(m))
	return entity.FieldMap(m), nil
}
