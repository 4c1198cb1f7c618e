package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neon-snake/internal/config"
	"neon-snake/internal/site"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = config.Default()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes", "--prefix", "/projects/neon-snake")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 7)
	assert.Contains(t, out, "/projects/neon-snake/robots.txt")
	assert.Contains(t, out, "render index.html")
	assert.Contains(t, out, "/projects/neon-snake/static/*")
}

func TestRoutesCommand_BadPrefix(t *testing.T) {
	_, err := execute(t, "routes", "--prefix", "projects/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with /")
}

func TestCheckCommand_ShippedAssets(t *testing.T) {
	// run against the templates and static dirs at the repo root
	out, err := execute(t, "check", "--templates", "../../templates", "--static", "../../static", "--prefix", "/projects/neon-snake")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "\"Neon Snake\"")
}

func TestCheckCommand_MissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>hi</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *\n"), 0o644))

	out, err := execute(t, "check", "--templates", dir, "--static", dir, "--prefix", "/projects/neon-snake")
	require.Error(t, err)
	assert.Contains(t, out, "FAIL 404 /sitemap.xml")
}

func TestAssetsCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "assets", "--static", dir, "--origin", "https://snake.dev", "--prefix", "/projects/neon-snake")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	robots, err := os.ReadFile(filepath.Join(dir, "robots.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(robots), "Sitemap: https://snake.dev/projects/neon-snake/sitemap.xml")

	sitemap, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "<loc>https://snake.dev/projects/neon-snake/</loc>")
}

func TestAssetsCommand_BadOrigin(t *testing.T) {
	_, err := execute(t, "assets", "--static", t.TempDir(), "--origin", "snake.dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute http(s) URL")
}

func TestShippedAssets_MatchDefaultOrigin(t *testing.T) {
	def := config.Default()

	robots, err := os.ReadFile("../../static/robots.txt")
	require.NoError(t, err)
	assert.Equal(t, string(site.Robots(def.Origin, def.Prefix)), string(robots))

	want, err := site.Sitemap(def.Origin, def.Prefix)
	require.NoError(t, err)
	sitemap, err := os.ReadFile("../../static/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(sitemap))
}

func TestCacheFlag_DocumentsStaleness(t *testing.T) {
	usage := serveCmd.Flags().Lookup("cache").Usage
	assert.Contains(t, usage, "deleted index.html go unnoticed")
}
