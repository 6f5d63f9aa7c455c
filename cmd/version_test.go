package cmd

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/gomutest/internal/domain"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "gomutest")
	assert.Contains(t, output, runtime.Version())
	assert.Contains(t, output, domain.CacheTag())
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name         string
		info         *debug.BuildInfo
		ok           bool
		wantVersion  string
		wantRevision string
	}{
		{name: "no build info", ok: false, wantVersion: unknownVersion},
		{name: "empty version", info: &debug.BuildInfo{}, ok: true, wantVersion: unknownVersion},
		{
			name: "tagged build",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{{Key: "vcs", Value: "git"}, {Key: "vcs.revision", Value: "abc123"}},
			},
			ok:           true,
			wantVersion:  "v0.3.0",
			wantRevision: "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, revision := buildVersion(tt.info, tt.ok)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantRevision, revision)
		})
	}
}
