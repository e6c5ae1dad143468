package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, "tracker.db", cfg.DBPath)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, 5*time.Minute, cfg.PollInterval)
	require.Len(t, cfg.Regions, 4)
	require.Equal(t, "AMERICAS", cfg.Regions[0].Name)
	require.Contains(t, cfg.SheetBaseURL, "{{GID}}")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("POLL_INTERVAL", "90s")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "custom.db", cfg.DBPath)
	require.Equal(t, 90*time.Second, cfg.PollInterval)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "often")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
}

func TestLoadRejectsBaseURLWithoutPlaceholder(t *testing.T) {
	t.Setenv("SHEET_BASE_URL", "http://sheets.test/pub?output=csv")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
}

func TestURLFor(t *testing.T) {
	cfg := &Config{SheetBaseURL: "http://sheets.test/pub?gid={{GID}}&output=csv"}
	got := cfg.URLFor(RegionSource{Name: "EMEA", GID: "42"})
	require.Equal(t, "http://sheets.test/pub?gid=42&output=csv", got)
}

func TestLoadRegionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yml")
	content := `regions:
  - name: EMEA
    gid: "0"
  - name: PACIFIC
    gid: "1819901194"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("REGIONS_FILE", path)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, cfg.Regions, 2)
	require.Equal(t, RegionSource{Name: "EMEA", GID: "0"}, cfg.Regions[0])
	require.Equal(t, RegionSource{Name: "PACIFIC", GID: "1819901194"}, cfg.Regions[1])
}

func TestLoadRegionsFileRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yml")
	content := `regions:
  - name: EMEA
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("REGIONS_FILE", path)

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
}
