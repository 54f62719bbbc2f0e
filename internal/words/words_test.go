package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNormalizes(t *testing.T) {
	in := strings.NewReader(`
# comment
  Crane
slate
SLATE
it's
naïve
cat

x1y
`)
	got, err := Load(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "crane", "slate"}, got)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("dog\ncat\nlion\nfrog\n"), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "frog", "lion"}, got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestIsAlpha(t *testing.T) {
	assert.True(t, IsAlpha("abc"))
	assert.False(t, IsAlpha(""))
	assert.False(t, IsAlpha("Abc"))
	assert.False(t, IsAlpha("ab c"))
}

// Init is guarded by sync.Once, so only the embedded default is exercised here.
func TestInitEmbedded(t *testing.T) {
	require.NoError(t, Init(""))

	stats := Stats()
	assert.Greater(t, stats[5], 100)
	assert.Greater(t, stats[3], 50)

	five := OfLength(5)
	assert.Len(t, five, stats[5])
	assert.Contains(t, five, "crane")
	assert.IsNonDecreasing(t, five)

	all := All()
	all[0] = "zzzz"
	assert.NotEqual(t, "zzzz", All()[0])
}
