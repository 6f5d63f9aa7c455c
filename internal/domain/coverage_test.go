package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/gomutest/internal/adapter"
	m "gooze.dev/pkg/gomutest/internal/model"
)

func TestCoverageFilter_Filter(t *testing.T) {
	_, source := writeModule(t)
	sites := m.NewSiteSet(addSite, subSite, mixAdd, mixMul, trueLit)

	tests := []struct {
		name    string
		profile string
		want    m.SiteSet
	}{
		{
			name:    "module import path key",
			profile: "mode: count\nexample.com/calc/calc/calc.go:9.24,11.2 1 2\n",
			want:    m.NewSiteSet(subSite),
		},
		{
			name:    "absolute path key",
			profile: "mode: set\n" + string(source) + ":13.27,15.2 1 1\n",
			want:    m.NewSiteSet(mixAdd, mixMul),
		},
		{
			name:    "legacy underscore key",
			profile: "mode: set\n_" + string(source) + ":17.22,19.2 1 1\n",
			want:    m.NewSiteSet(trueLit),
		},
		{
			name:    "file never executed",
			profile: "mode: set\nexample.com/calc/calc/calc.go:4.24,6.2 1 0\n",
			want:    m.SiteSet{},
		},
		{
			name:    "no entry for file",
			profile: "mode: set\nexample.com/calc/other.go:1.1,2.2 1 1\n",
			want:    m.SiteSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := filepath.Join(t.TempDir(), ".coverage")
			writeFile(t, profile, tt.profile)

			filter := NewCoverageFilter(m.Path(profile), adapter.NewGoCoverProfileReader(), adapter.NewLocalSourceFSAdapter())

			got, err := filter.Filter(source, sites)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsSubsetOf(sites))
		})
	}

}

func TestCoverageFilter_Errors(t *testing.T) {
	_, source := writeModule(t)
	sites := m.NewSiteSet(addSite)

	t.Run("missing file", func(t *testing.T) {
		filter := NewCoverageFilter(m.Path(filepath.Join(t.TempDir(), ".coverage")), adapter.NewGoCoverProfileReader(), adapter.NewLocalSourceFSAdapter())

		_, err := filter.Filter(source, sites)
		assert.ErrorIs(t, err, m.ErrCoverageUnavailable)
	})

	t.Run("corrupt file", func(t *testing.T) {
		profile := filepath.Join(t.TempDir(), ".coverage")
		writeFile(t, profile, "not a coverage profile\n")

		filter := NewCoverageFilter(m.Path(profile), adapter.NewGoCoverProfileReader(), adapter.NewLocalSourceFSAdapter())

		_, err := filter.Filter(source, sites)
		assert.ErrorIs(t, err, m.ErrCoverageCorrupt)
	})
}
