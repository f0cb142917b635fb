package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/services"
)

func TestRequireServices_NotConfigured(t *testing.T) {
	SetServices(nil)
	SetBuilder(nil)

	_, err := requireServices()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestRequireServices_BuildsOnce(t *testing.T) {
	SetServices(nil)
	apiURL = "http://example.com/api"
	calls := 0
	var got BuildOptions
	SetBuilder(func(opts BuildOptions) (*Services, error) {
		calls++
		got = opts
		return &Services{Registry: &MockRegistry{}}, nil
	})
	t.Cleanup(func() {
		SetBuilder(nil)
		SetServices(nil)
		resetFlags()
	})

	first, err := requireServices()
	require.NoError(t, err)
	second, err := requireServices()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "http://example.com/api", got.APIURL)
	assert.NotNil(t, got.Progress)
}

func TestRequireServices_BuildError(t *testing.T) {
	SetServices(nil)
	SetBuilder(func(BuildOptions) (*Services, error) {
		return nil, errors.New("bad config")
	})
	t.Cleanup(func() { SetBuilder(nil) })

	_, err := requireServices()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}

func TestSetServices_BypassesBuilder(t *testing.T) {
	installed := &Services{
		Registry:     services.NewRegistry(&MockBackend{}),
		Conversation: services.NewConversation(&MockBackend{}, nil),
	}
	SetServices(installed)
	SetBuilder(func(BuildOptions) (*Services, error) {
		t.Fatal("builder should not run when services are installed")
		return nil, nil
	})
	t.Cleanup(func() {
		SetBuilder(nil)
		SetServices(nil)
	})

	got, err := requireServices()

	require.NoError(t, err)
	assert.Same(t, installed, got)
}

func TestCloseServices(t *testing.T) {
	closed := false
	SetServices(&Services{Close: func() error {
		closed = true
		return nil
	}})
	t.Cleanup(func() { SetServices(nil) })

	closeServices()

	assert.True(t, closed)
}

func TestReportProgress(t *testing.T) {
	buf := new(bytes.Buffer)
	setProgressOutput(buf)
	t.Cleanup(func() { setProgressOutput(nil) })

	reportProgress("report.pdf", 50, 200)
	reportProgress("report.pdf", 200, 200)

	assert.Equal(t, "\rreport.pdf:  25%\rreport.pdf: 100%\n", buf.String())
}

func TestReportProgress_Silenced(t *testing.T) {
	setProgressOutput(nil)

	assert.NotPanics(t, func() { reportProgress("report.pdf", 1, 2) })
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"documents", "upload", "ask", "chat", "tui", "mcp", "settings", "version"} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestTUICmd_RequiresServices(t *testing.T) {
	SetServices(nil)
	SetBuilder(nil)
	t.Cleanup(resetFlags)

	_, _, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestMCPServe_RequiresServices(t *testing.T) {
	SetServices(nil)
	SetBuilder(nil)
	t.Cleanup(resetFlags)

	_, _, err := execute(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}
