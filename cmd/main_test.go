package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	rootCmd := newRootCommand()

	for _, name := range []string{
		"source", "target", "source-template", "target-template", "ext", "sidecar-ext",
		"out", "metadata-backend", "exiftool-path", "default-date", "dry-run",
	} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag --%s", name)
	}

	explainCmd, _, err := rootCmd.Find([]string{"explain"})
	require.NoError(t, err)
	assert.Equal(t, "explain", explainCmd.Name())
	assert.NotNil(t, explainCmd.InheritedFlags().Lookup("source-template"), "explain shares the flags")
}

func TestRootCommandRequiresArguments(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()

	rootCmd := newRootCommand()
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}

func TestOrganizeCommand(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()

	root := t.TempDir()
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "out")
	source := filepath.Join(in, "20120804", "IMG_001.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0o755))
	require.NoError(t, os.WriteFile(source, []byte("jpeg"), 0o644))
	mtime := time.Date(2020, time.May, 6, 7, 8, 9, 0, time.Local)
	require.NoError(t, os.Chtimes(source, mtime, mtime))

	rootCmd := newRootCommand()
	rootCmd.SetArgs([]string{
		"--source", "path,modifyTime",
		"--metadata-backend", "none",
		"--source-template", "yyyyMMdd/[.*]",
		"--target-template", "yyyy/yyyyMMdd/[$1]",
		"--out", out,
		in,
	})
	require.NoError(t, rootCmd.Execute())

	destination := filepath.Join(out, "2012", "20120804", "IMG_001.jpg")
	info, err := os.Stat(destination)
	require.NoError(t, err)
	assert.True(t, time.Date(2012, time.August, 4, 7, 8, 9, 0, time.Local).Equal(info.ModTime()))
}

func TestOrganizeDryRunFlag(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()

	root := t.TempDir()
	source := filepath.Join(root, "20120804", "IMG_001.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0o755))
	require.NoError(t, os.WriteFile(source, []byte("jpeg"), 0o644))

	out := filepath.Join(t.TempDir(), "out")
	rootCmd := newRootCommand()
	rootCmd.SetArgs([]string{"--dry-run", "--source", "path", "--metadata-backend", "none", "--out", out, source})
	require.NoError(t, rootCmd.Execute())
	assert.NoDirExists(t, out)
}

func TestOrganizeReportsFilesystemErrors(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()

	os.Setenv("SOURCE", "path")
	os.Setenv("METADATA_BACKEND", "none")
	cfg, err := resolveConfig(quietLogger())
	require.NoError(t, err)

	err = organize(cfg, []string{filepath.Join(t.TempDir(), "missing")}, quietLogger())
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	os.Setenv("SOURCE", "metadata,path,modifyTime")
	os.Setenv("METADATA_BACKEND", "none")
	os.Setenv("OUTPUT_ROOT", filepath.Join(t.TempDir(), "out"))
	cfg, err := resolveConfig(quietLogger())
	require.NoError(t, err)

	t.Run("path that does not exist", func(t *testing.T) {
		var buf bytes.Buffer
		missing := filepath.Join(t.TempDir(), "20120804 Holiday", "IMG_001.jpg")
		require.NoError(t, explain(&buf, cfg, []string{missing}, quietLogger()))

		output := buf.String()
		assert.Contains(t, output, `"20120804 Holiday" ~ "<([0-9]+).*>$1=yyyyMMdd" captures=["20120804"] date=year|month|day`)
		assert.Contains(t, output, "modifyTime:")
		assert.Contains(t, output, filepath.Join(cfg.options.OutputRoot, "2012", "20120804", "IMG_001.jpg"))
		assert.Contains(t, output, "from path")
		assert.NoDirExists(t, cfg.options.OutputRoot)
	})

	t.Run("path without a date", func(t *testing.T) {
		var buf bytes.Buffer
		missing := filepath.Join(t.TempDir(), "Holiday", "IMG_001.jpg")
		require.NoError(t, explain(&buf, cfg, []string{missing}, quietLogger()))
		assert.Contains(t, buf.String(), "No time for "+missing)
	})

	t.Run("existing file uses its modify time", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "Holiday", "IMG_001.jpg")
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
		require.NoError(t, os.WriteFile(file, []byte("jpeg"), 0o644))
		mtime := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.Local)
		require.NoError(t, os.Chtimes(file, mtime, mtime))

		var buf bytes.Buffer
		require.NoError(t, explain(&buf, cfg, []string{file}, quietLogger()))
		assert.Contains(t, buf.String(), filepath.Join(cfg.options.OutputRoot, "2021", "20210304", "IMG_001.jpg"))
		assert.Contains(t, buf.String(), "from modifyTime")
	})
}
