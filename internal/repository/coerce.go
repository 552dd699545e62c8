package repository

import (
	"strconv"
	"time"

	"github.com/zalahu/EnergyZ/internal/entity"
)

// Field values arrive JSON-shaped and loosely typed. Coercion failures store
// NULL rather than failing the save; only a malformed payload aborts.

func textValue(fields entity.FieldMap, key string) any {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
}

func numericValue(fields entity.FieldMap, key string) any {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

func dateValue(fields entity.FieldMap, key string) any {
	s, ok := fields.String(key)
	if !ok {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return nil
	}
	return s
}
