package collection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tcg-portfolio/internal/model"
)

func TestDefaultQueries(t *testing.T) {
	q := DefaultQueries()

	require.NotEmpty(t, q)
	assert.Equal(t, model.Query("Bulbasaur MEG 133"), q[0])
	assert.Equal(t, model.Query("Stufful MEG 154"), q[len(q)-1])
	assert.Contains(t, q, model.Query("Keldeo GG07/GG70"))

	q[0] = "changed"
	assert.Equal(t, model.Query("Bulbasaur MEG 133"), DefaultQueries()[0], "callers get a copy")
}

func TestParse(t *testing.T) {
	input := `# my binder
Pikachu SWSH143

  Vulpix 197  
# sleeved
Pikachu SWSH143
`
	q, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []model.Query{"Pikachu SWSH143", "Vulpix 197", "Pikachu SWSH143"}, q)
}

func TestParse_Empty(t *testing.T) {
	q, err := Parse(strings.NewReader("\n# nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, q)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.txt")
	require.NoError(t, os.WriteFile(path, []byte("Mew SVP 053\nMewtwo SVP 052\n"), 0644))

	q, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Query{"Mew SVP 053", "Mewtwo SVP 052"}, q)

	q, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultQueries(), q)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
