package llm

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/zalahu/EnergyZ/constants"
)

// sanitizeFieldMap normalizes a decoded model response in place:
//   - removes keys outside the canonical field allowlist
//   - drops null and empty values
//   - coerces stringified numbers for numeric fields, dropping unparseable ones
//   - stringifies numeric output for text fields
//   - drops dates that are not YYYY-MM-DD and currency codes that are not
//     three letters; one malformed field never costs the rest
//   - trims strings and uppercases the currency code
//
// It returns the list of keys it dropped or rewrote, for logging.
func sanitizeFieldMap(m map[string]any, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	dropped := make([]string, 0, 8)

	for k := range m {
		if _, ok := constants.AllowedFields[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	for _, k := range constants.NumericFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			// already the shape we want
		case string:
			s := numericCleanup(t)
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				delete(m, k)
				dropped = append(dropped, k+"(unparseable)")
				continue
			}
			m[k] = f
			dropped = append(dropped, k+"(coerced)")
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	for _, k := range constants.TextFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case float64:
			m[k] = strconv.FormatFloat(t, 'f', -1, 64)
			dropped = append(dropped, k+"(stringified)")
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	for _, k := range []string{constants.FieldStartDate, constants.FieldEndDate} {
		v, ok := m[k]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if _, err := time.Parse("2006-01-02", s); err == nil {
				continue
			}
		}
		delete(m, k)
		dropped = append(dropped, k+"(format)")
	}

	if v, ok := m[constants.FieldCurrency]; ok {
		if s, ok := v.(string); ok {
			s = strings.ToUpper(strings.TrimSpace(s))
			if len(s) != 3 {
				delete(m, constants.FieldCurrency)
				dropped = append(dropped, constants.FieldCurrency+"(format)")
			} else {
				m[constants.FieldCurrency] = s
			}
		} else {
			delete(m, constants.FieldCurrency)
			dropped = append(dropped, constants.FieldCurrency+"(type)")
		}
	}

	if len(dropped) > 0 {
		logger.Warn("llm.parse.sanitize", "dropped", fmt.Sprint(dropped))
	}
	return dropped
}

// numericCleanup strips decoration commonly seen around money figures so
// "USD 5,000,000" or "12%" can still coerce.
func numericCleanup(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "$")
	for _, cur := range []string{"USD", "EUR", "GBP"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, cur))
	}
	return strings.TrimSpace(s)
}
