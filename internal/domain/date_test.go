package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{"1965-05-15", "05/15/1965", "1965-05-15T00:00:00Z", " 1965-05-15 "} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, NewDate(1965, 5, 15), d)
	}

	_, err := ParseDate("15.05.1965")
	assert.Error(t, err)
}

func TestDate_YAML(t *testing.T) {
	var doc struct {
		Born Date  `yaml:"born"`
		Hire *Date `yaml:"hire"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("born: 1965-05-15\nhire: \"06/01/1990\"\n"), &doc))
	assert.Equal(t, NewDate(1965, 5, 15), doc.Born)
	require.NotNil(t, doc.Hire)
	assert.Equal(t, NewDate(1990, 6, 1), *doc.Hire)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "born: \"1965-05-15\"")

	err = yaml.Unmarshal([]byte("born: 1965-05-15\nhire: 13/45/1990\n"), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), DateFormats)
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-01-01"`), &d))
	assert.Equal(t, NewDate(2026, 1, 1), d)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-01"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`20260101`), &d))
}
