package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/delay-cli/internal/config"
)

const scheduleCSV = `Activity_ID,Activity_Name,Update_ID,Planned_Start,Planned_Finish,Actual_Start,Actual_Finish,Longest_Path,Total_Float,Delay_Cause
A1,Foundations,Baseline,2024-01-01,2024-01-10,,,Yes,0,
A2,Steel,Baseline,2024-01-11,2024-02-01,,,Yes,0,
A1,Foundations,U1,2024-01-01,2024-01-10,2024-01-02,2024-01-15,Yes,-5,Weather
A2,Steel,U2,2024-01-11,2024-02-01,2024-01-16,2024-02-10,No,-9,Labor
`

// testConfig mirrors the config defaults with the run log disabled.
func testConfig() *config.Config {
	c := &config.Config{}
	c.Input.HTTPTimeoutSecs = 5
	c.Input.HTTPRetries = 1
	c.Input.UserAgent = "delay-cli-test"
	c.Analysis.BaselineID = "Baseline"
	c.Analysis.SummarizeCauses = true
	c.Store.Driver = "none"
	c.Server.Port = 8080
	c.Server.MaxUploadMB = 5
	c.Server.RateLimit = 100
	c.Server.RateBurst = 100
	c.Log.Level = "info"
	c.Log.Format = "json"
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
