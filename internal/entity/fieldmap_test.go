package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMapString(t *testing.T) {
	f := FieldMap{
		"Project Name": "  Solar Farm  ",
		"Capex":        float64(5000000),
		"Blank":        "   ",
	}

	s, ok := f.String("Project Name")
	assert.True(t, ok)
	assert.Equal(t, "Solar Farm", s)

	_, ok = f.String("Capex")
	assert.False(t, ok)
	_, ok = f.String("Blank")
	assert.False(t, ok)
	_, ok = f.String("Missing")
	assert.False(t, ok)
}

func TestFieldMapClone(t *testing.T) {
	orig := FieldMap{"Project Name": "Solar Farm"}
	clone := orig.Clone()
	clone["Project Name"] = "edited"
	clone["Status"] = "Active"

	assert.Equal(t, "Solar Farm", orig["Project Name"])
	assert.False(t, orig.Has("Status"))
	assert.True(t, clone.Has("Status"))
}
