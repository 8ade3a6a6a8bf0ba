package argbind

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usageServe struct {
	Port int `help:"port to listen on"`
}

type usageApp struct {
	Verbose bool        `help:"enable verbose output"`
	Path    string      `arg:"positional" help:"input path"`
	Serve   *usageServe `help:"start the server"`
}

func TestUsage(t *testing.T) {
	t.Parallel()

	opts := &Options{Name: "app", NoColor: true, Description: "does app things"}
	out, err := Usage(&usageApp{Verbose: false, Path: "."}, opts)
	require.NoError(t, err)

	assert.Contains(t, out, "does app things")
	assert.Contains(t, out, "usage: app [flags] [PATH] [command]")
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "start the server")
	assert.Contains(t, out, "arguments:")
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "flags:")
	assert.Contains(t, out, "--verbose, -v")
	assert.Contains(t, out, "bool, default: false.")
	assert.Contains(t, out, "enable verbose output")
	assert.Contains(t, out, "-h, --help")
	assert.Contains(t, out, `Use "app [command] --help"`)
}

func TestUsageHelpFormat(t *testing.T) {
	t.Parallel()

	t.Run("custom format", func(t *testing.T) {
		t.Parallel()
		opts := &Options{Name: "app", NoColor: true, HelpFormat: "({type}; {default})"}
		out, err := Usage(&usageApp{Path: "."}, opts)
		require.NoError(t, err)
		assert.Contains(t, out, `(string; ".")`)
	})
	t.Run("prefix disabled", func(t *testing.T) {
		t.Parallel()
		opts := &Options{Name: "app", NoColor: true, DisableHelpPrefix: true}
		out, err := Usage(&usageApp{}, opts)
		require.NoError(t, err)
		assert.NotContains(t, out, "default:")
		assert.Contains(t, out, "enable verbose output")
	})
	t.Run("colors emit escapes", func(t *testing.T) {
		t.Parallel()
		pal := newPalette(true)
		colored := pal.header("usage:")
		// When the test binary runs without a tty the color library may strip codes
		// globally; only assert that the palette never loses the text itself.
		assert.Contains(t, colored, "usage:")

		plain := newPalette(false)
		assert.Equal(t, "usage:", plain.header("usage:"))
	})
}

func TestUsageOneDash(t *testing.T) {
	t.Parallel()

	opts := &Options{Name: "app", NoColor: true, OneDash: true}
	out, err := Usage(&usageApp{}, opts)
	require.NoError(t, err)
	assert.Contains(t, out, "-verbose")
	assert.False(t, strings.Contains(out, "--verbose"))
}

func TestUsageSubcommandScope(t *testing.T) {
	t.Parallel()

	// Help requested under a subcommand shows local flags plus the parent's as global.
	app := &usageApp{}
	opts := checkAndSetOptions(&Options{Name: "app", NoColor: true})
	rv, err := structValue(app)
	require.NoError(t, err)
	root, err := readScope("app", rv, opts)
	require.NoError(t, err)
	assignShortcuts(root)
	root.subs[0].selected = true

	out := usageText(opts, []*scope{root, root.subs[0].sc})
	assert.Contains(t, out, "usage: app serve")
	assert.Contains(t, out, "--port")
	assert.Contains(t, out, "global flags:")
	assert.Contains(t, out, "--verbose")
}
