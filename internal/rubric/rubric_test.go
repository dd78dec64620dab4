package rubric

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRubric(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rubric.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	p := writeRubric(t, `{
		"general": [{"code": "A1", "name": "Clarity", "distinguished": "Ideas are precise."}],
		"english": [{"code": "W1", "name": "Thesis", "distinguished": "Thesis is arguable."}]
	}`)

	r, err := Load(p)
	require.NoError(t, err)

	comps := r.Components("english")
	require.Len(t, comps, 1)
	assert.Equal(t, "W1", comps[0].Code)

	// Unknown subject falls back to general.
	comps = r.Components("biology")
	require.Len(t, comps, 1)
	assert.Equal(t, "A1", comps[0].Code)

	assert.ElementsMatch(t, []string{"general", "english"}, r.Subjects())
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeRubric(t, `{not json`))
	assert.Error(t, err)
}

func TestLoadMissingCode(t *testing.T) {
	_, err := Load(writeRubric(t, `{"general": [{"name": "Clarity"}]}`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
