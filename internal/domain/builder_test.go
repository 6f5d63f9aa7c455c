package domain

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/gomutest/internal/adapter"
	m "gooze.dev/pkg/gomutest/internal/model"
)

func newTestBuilder() *Builder {
	return NewBuilder(NewCollector(nil), adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter())
}

func TestGoRelease(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{version: "go1.25.1", want: "go1.25"},
		{version: "go1.25", want: "go1.25"},
		{version: "go1", want: "go1"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, goRelease(tt.version))
		})
	}

	assert.True(t, strings.HasPrefix(CacheTag(), "gomutest-"))
	assert.NotContains(t, CacheTag(), " ")
}

func TestBuilder_CachePath(t *testing.T) {
	b := newTestBuilder()
	dir := t.TempDir()
	source := m.Path(filepath.Join(dir, "calc.go"))

	cachePath, err := b.CachePath(source)
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(dir, CacheDirName, "calc."+CacheTag()+".go")), cachePath)

	overlayPath, err := b.OverlayPath(source)
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join(dir, CacheDirName, "calc."+CacheTag()+".overlay.json")), overlayPath)

	again, err := b.CachePath(source)
	require.NoError(t, err)
	assert.Equal(t, cachePath, again)
}

func TestBuilder_Build(t *testing.T) {
	_, source := writeModule(t)
	tree := parseTree(t, string(source), calcSrc)
	b := newTestBuilder()

	mutant, err := b.Build(tree, source, addSite, "*")
	require.NoError(t, err)

	assert.Equal(t, source, mutant.Source)
	assert.Equal(t, addSite, mutant.Site)
	assert.Equal(t, "*", mutant.Replacement)
	assert.Contains(t, string(mutant.Code), "return a * b")
	assert.Contains(t, string(mutant.Code), "return a - b")

	// The caller's tree is untouched and can build further mutants.
	assert.True(t, NewCollector(nil).Collect(tree).Contains(addSite))

	other, err := b.Build(tree, source, addSite, "-")
	require.NoError(t, err)
	assert.Contains(t, string(other.Code), "return a - b\n}\n\n// Sub")

	_, statErr := os.Stat(string(mutant.CachePath))
	assert.True(t, os.IsNotExist(statErr), "Build must not write the cache slot")
}

func TestBuilder_BuildErrors(t *testing.T) {
	_, source := writeModule(t)
	tree := parseTree(t, string(source), calcSrc)
	b := newTestBuilder()

	_, err := b.Build(tree, source, m.Site{Kind: m.KindBinaryExpr, Line: 1, Column: 1, Op: "+"}, "-")
	assert.ErrorIs(t, err, m.ErrSiteNotFound)

	_, err = b.Build(tree, source, addSite, "&&")
	assert.ErrorIs(t, err, m.ErrInvalidReplacement)

	_, err = b.Build(nil, source, addSite, "-")
	assert.ErrorIs(t, err, m.ErrNoSource)
}

func TestBuilder_PersistAndDiscard(t *testing.T) {
	_, source := writeModule(t)
	tree := parseTree(t, string(source), calcSrc)
	b := newTestBuilder()

	first, err := b.Build(tree, source, addSite, "*")
	require.NoError(t, err)

	require.NoError(t, b.Persist(first))
	require.NoError(t, b.Persist(first))

	code, err := os.ReadFile(string(first.CachePath))
	require.NoError(t, err)
	assert.Equal(t, first.Code, code)

	manifest, err := os.ReadFile(string(first.OverlayPath))
	require.NoError(t, err)

	var doc struct {
		Replace map[string]string
	}

	require.NoError(t, json.Unmarshal(manifest, &doc))
	assert.Equal(t, map[string]string{string(source): string(first.CachePath)}, doc.Replace)

	t.Run("later mutant overwrites the slot", func(t *testing.T) {
		second, err := b.Build(tree, source, subSite, "+")
		require.NoError(t, err)
		require.Equal(t, first.CachePath, second.CachePath)

		require.NoError(t, b.Persist(second))

		code, err := os.ReadFile(string(second.CachePath))
		require.NoError(t, err)
		assert.Equal(t, second.Code, code)
		assert.Contains(t, string(code), "return a + b\n}\n\n// Sub")
	})

	t.Run("discard removes the slot", func(t *testing.T) {
		require.NoError(t, b.Discard(first))
		require.NoError(t, b.Discard(first))

		_, err := os.Stat(filepath.Dir(string(first.CachePath)))
		assert.True(t, os.IsNotExist(err))

		_, err = os.Stat(string(source))
		assert.NoError(t, err)
	})
}

func TestBuilder_Diff(t *testing.T) {
	_, source := writeModule(t)
	tree := parseTree(t, string(source), calcSrc)
	b := newTestBuilder()

	mutant, err := b.Build(tree, source, trueLit, "false")
	require.NoError(t, err)

	diff, err := b.Diff(tree, mutant)
	require.NoError(t, err)
	assert.Contains(t, diff, "-\treturn true")
	assert.Contains(t, diff, "+\treturn false")
	assert.Equal(t, 1, strings.Count(diff, "\n+\t"))
}

// TestBuilder_OverlayIsObserved checks that the go command runs the mutant
// through the overlay manifest while the source file stays unchanged.
func TestBuilder_OverlayIsObserved(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/binop\n\ngo 1.21\n")

	src, err := os.ReadFile(filepath.Join("..", "..", "examples", "binop", "main.go"))
	require.NoError(t, err)

	source := m.Path(filepath.Join(dir, "main.go"))
	writeFile(t, string(source), string(src))

	tree := parseTree(t, string(source), string(src))
	b := newTestBuilder()

	run := func(args ...string) string {
		cmd := exec.Command("go", append([]string{"run"}, args...)...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GOFLAGS=", "GOWORK=off")

		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))

		return strings.TrimSpace(string(out))
	}

	assert.Equal(t, "10", run("."))

	mutant, err := b.Build(tree, source, m.Site{Kind: m.KindBinaryExpr, Line: 7, Column: 11, Op: "+"}, "*")
	require.NoError(t, err)
	require.NoError(t, b.Persist(mutant))

	t.Cleanup(func() { _ = b.Discard(mutant) })

	assert.Equal(t, "25", run(mutant.OverlayFlag(), "."))
	assert.Equal(t, "10", run("."))

	after, err := os.ReadFile(string(source))
	require.NoError(t, err)
	assert.Equal(t, src, after)
}
