package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/leapstack-labs/leapdraw/internal/cli/testutil"
)

func TestDoctor_Healthy(t *testing.T) {
	out, _, err := executeWithConfig(t, NewDoctorCommand(), ":memory:")
	require.NoError(t, err)

	md := out.String()
	assert.Contains(t, md, "# leapdraw doctor")
	clitest.AssertMarkdownTable(t, md, "Check", "Status", "Details")
	assert.Contains(t, md, "Drawing Store")
	assert.Contains(t, md, "schema version 2")
	assert.Contains(t, md, "Console Logging")
	assert.Contains(t, md, "all checks passed")
}

func TestDoctor_JSON(t *testing.T) {
	tests := []struct {
		name        string
		logStrategy string
		healthy     bool
		status      string
	}{
		{name: "database logging", logStrategy: "database", healthy: true, status: statusPass},
		{name: "unknown logging", logStrategy: "syslog", healthy: false, status: statusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clitest.MemoryConfig()
			cfg.OutputFormat = "json"
			cfg.LogStrategy = tt.logStrategy

			cmd := NewDoctorCommand()
			cmd.SilenceUsage = true
			out := new(bytes.Buffer)
			cmd.SetOut(out)
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs(nil)
			err := cmd.ExecuteContext(clitest.ContextWithConfig(cfg))
			if tt.healthy {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, "1 check(s) failed")
			}

			var report DoctorOutput
			require.NoError(t, json.Unmarshal(out.Bytes(), &report))
			assert.Equal(t, tt.healthy, report.Healthy)

			byName := map[string]HealthCheck{}
			for _, c := range report.Checks {
				byName[c.Name] = c
			}
			assert.Equal(t, tt.status, byName["action log"].Status)
			assert.Equal(t, statusPass, byName["drawing store"].Status)
			assert.Equal(t, statusWarn, byName["config file"].Status)
			assert.Equal(t, statusWarn, byName["shell history"].Status)
		})
	}
}
