package stattab_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stattab/pkg/stattab"
)

func TestExportRoundTrip(t *testing.T) {
	c, _ := newFixture(t, stattab.Columns("h1", "h2"), "", 80)

	_, err := c.Add(stattab.Row{"h1": 1, "h2": 2})
	require.NoError(t, err)
	_, err = c.Add(stattab.Row{"h1": 300, "h2": 4})
	require.NoError(t, err)

	want := strings.Join([]string{
		"------------",
		"| h1  | h2 |",
		"------------",
		"| 1   | 2  |",
		"------------",
		"| 300 | 4  |",
		"------------",
	}, "\n")
	assert.Equal(t, want, c.Export(), "all rows padded to current widths")
}

func TestExportWithTitle(t *testing.T) {
	c, _ := newFixture(t, stattab.Columns("h1"), "RUN", 80)

	_, err := c.Add(stattab.Row{"h1": 1})
	require.NoError(t, err)

	want := strings.Join([]string{
		"-------",
		"| RUN |",
		"-------",
		"| h1 |",
		"------",
		"| 1  |",
		"------",
	}, "\n")
	assert.Equal(t, want, c.Export())
}

func TestExportWithInfoLines(t *testing.T) {
	c, _ := newFixture(t, stattab.Columns("h1"), "", 80)

	_, err := c.Add(stattab.Row{"h1": 1, "info": "converged"})
	require.NoError(t, err)

	want := strings.Join([]string{
		"------",
		"| h1 |",
		"------",
		"| 1  |",
		"------",
		"converged",
		"------",
	}, "\n")
	assert.Equal(t, want, c.Export())
}

func TestExportLast(t *testing.T) {
	c, _ := newFixture(t, stattab.Columns("h1"), "", 80)

	_, err := c.Add(stattab.Row{"h1": 1})
	require.NoError(t, err)
	_, err = c.Add(stattab.Row{"h1": 2})
	require.NoError(t, err)

	last := c.ExportLast()
	assert.Contains(t, last, "| 2  |")
	assert.NotContains(t, last, "| 1  |")
}

func TestExportIgnoresTruncation(t *testing.T) {
	// a 10-column terminal truncates the live view but never the export
	c, _ := newFixture(t, stattab.Columns("h1", "h2"), "", 10)

	_, err := c.Add(stattab.Row{"h1": 11111, "h2": 22222})
	require.NoError(t, err)

	assert.Contains(t, c.Export(), "| 11111 | 22222 |")
}

func TestShowTable(t *testing.T) {
	c, f := newFixture(t, stattab.Columns("h1"), "", 80)

	_, err := c.Add(stattab.Row{"h1": 1})
	require.NoError(t, err)
	f.delta()

	table := c.ShowTable(false)
	assert.Equal(t, c.Export(), table)
	assert.Contains(t, f.delta(), table)
}

func TestShowTableErasesLiveView(t *testing.T) {
	c, f := newFixture(t, stattab.Columns("h1"), "", 80)

	_, err := c.Add(stattab.Row{"h1": 1})
	require.NoError(t, err)
	f.delta()

	c.ShowTable(true)
	// live view was header block (3 lines) + stat block (2 lines)
	assert.Equal(t, 5, strings.Count(f.delta(), escErase))
}

func TestWriteFileOverwrite(t *testing.T) {
	c, _ := newFixture(t, stattab.Columns("h1"), "", 80)
	_, err := c.Add(stattab.Row{"h1": 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stats.log")
	require.NoError(t, c.WriteFile(path, stattab.FileOverwrite, false))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.Export()+"\n", string(content), "trailing newline appended")

	// overwrite replaces, not appends
	require.NoError(t, c.WriteFile(path, stattab.FileOverwrite, false))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.Export()+"\n", string(content))
}

func TestWriteFileAppend(t *testing.T) {
	c, _ := newFixture(t, stattab.Columns("h1"), "", 80)
	_, err := c.Add(stattab.Row{"h1": 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stats.log")
	require.NoError(t, c.WriteFile(path, stattab.FileAppend, false))
	require.NoError(t, c.WriteFile(path, stattab.FileAppend, true))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.Export()+"\n"+c.ExportLast()+"\n", string(content))
}

func TestNewRemovesStaleExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.log")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	_, err := stattab.New(stattab.Columns("h1"), "", func() stattab.Config {
		cfg := stattab.DefaultConfig()
		cfg.WriteFile = true
		cfg.FilePath = path
		cfg.PrintStats = false
		return cfg
	}())
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "overwrite mode removes the stale file")
}

func TestFileMirrorInAppendMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.log")
	c, f := newFixture(t, stattab.Columns("h1", "h2"), "", 80, func(cfg *stattab.Config) {
		cfg.WriteFile = true
		cfg.FileMode = stattab.FileAppend
		cfg.FilePath = path
	})

	_, err := c.Add(stattab.Row{"h1": 1, "h2": 2})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.buf.String(), string(content), "file mirrors every printed block")
}

func TestPrintParams(t *testing.T) {
	c, _ := newFixture(t, []stattab.Header{{Key: "h1", Name: "epoch"}}, "RUN", 80)

	var sb strings.Builder
	c.PrintParams(&sb)
	out := sb.String()
	assert.Contains(t, out, "title: RUN")
	assert.Contains(t, out, `h1="epoch"`)
}
