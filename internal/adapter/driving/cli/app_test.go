package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParsedApp(t *testing.T, argv ...string) *CLIApp {
	t.Helper()
	t.Setenv("CLIENT_ID", "")
	t.Setenv("TENANT_ID", "")
	t.Setenv("CLIENT_SECRET", "")

	app := NewCLIApp("dev")
	require.NoError(t, app.rootCmd.ParseFlags(argv))
	return app
}

func TestParseArgsLeavesUnsetFlagsEmpty(t *testing.T) {
	app := newParsedApp(t, "--client-id", "client", "--tenant-id", "tenant")

	args, err := app.parseArgs()
	require.NoError(t, err)

	assert.Equal(t, "client", args.ClientID)
	assert.Equal(t, "tenant", args.TenantID)
	assert.Empty(t, args.ReportName, "unset flags stay empty so config values can apply")
	assert.Empty(t, args.ReportType)
	assert.Empty(t, args.Dir)
}

func TestParseArgsKeepsExplicitFlags(t *testing.T) {
	app := newParsedApp(t,
		"--report-name", "weekly_webhooks",
		"--report-type", "csv,pdf",
		"--dir", "reports",
	)

	args, err := app.parseArgs()
	require.NoError(t, err)

	assert.Equal(t, "weekly_webhooks", args.ReportName)
	assert.Equal(t, []string{"csv", "pdf"}, args.ReportType)
	assert.True(t, filepath.IsAbs(args.Dir))
	assert.Equal(t, "reports", filepath.Base(args.Dir))
}

func TestParseArgsReadsIdentifiersFromEnvironment(t *testing.T) {
	app := newParsedApp(t)
	t.Setenv("CLIENT_ID", "env-client")
	t.Setenv("TENANT_ID", "env-tenant")

	args, err := app.parseArgs()
	require.NoError(t, err)

	assert.Equal(t, "env-client", args.ClientID)
	assert.Equal(t, "env-tenant", args.TenantID)
}
