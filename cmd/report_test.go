package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/gomutest/internal/domain"
	m "gooze.dev/pkg/gomutest/internal/model"
)

func TestReportCmd(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newReportCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Report", mock.Anything, domain.ReportArgs{
		Reports:      m.Path("custom"),
		ReportFormat: "sqlite",
	}).Return(nil)

	cmd.SetArgs([]string{"report", "--output", "custom", "--format", "sqlite"})
	require.NoError(t, cmd.Execute())
}

func TestReportCmd_RejectsArgs(t *testing.T) {
	withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newReportCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"report", "extra"})
	require.Error(t, cmd.Execute())
}
