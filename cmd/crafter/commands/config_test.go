package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"buildcrafter/lib/configutil"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := configutil.ReadConfigOr(filepath.Join(t.TempDir(), "crafter.json5"), defaultConfig)
	require.NoError(t, err)
	require.Equal(t, "/wiki/", cfg.PathPrefix)
	require.Equal(t, "items.db", cfg.Store.File)
	require.Equal(t, 15*time.Second, cfg.http(0).Timeout)
}

func TestConfigKindOverrides(t *testing.T) {
	name := filepath.Join(t.TempDir(), "crafter.json5")
	err := os.WriteFile(name, []byte(`{
		// armor pages are slow
		"kinds": {
			"armor": {"output": "armor.json", "request_delay_ms": 0},
		},
	}`), 0644)
	require.NoError(t, err)

	cfg, err := configutil.ReadConfigOr(name, defaultConfig)
	require.NoError(t, err)

	armor := cfg.kind("armour")
	require.Equal(t, "armor.json", armor.Output)
	require.Equal(t, "armorLinks.json", armor.Input)
	require.Equal(t, time.Duration(0), armor.RequestDelay)

	weapon := cfg.kind("weapon")
	require.Equal(t, "weapons_data_output.json", weapon.Output)
	require.Equal(t, "https://core-keeper.fandom.com", cfg.baseUrl().String())
}
