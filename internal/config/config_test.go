package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minseo-lab/chulgeun/internal/attendance"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chulgeun.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
site:
  latitude: 37.456461
  longitude: 126.952096
  radius_m: 100
  timezone: Asia/Seoul
policy:
  clock_in_cutoff: "09:30"
  clock_out_cutoff: "18:30"
names:
  - 홍길동
  - 김철수
store:
  backend: workbook
  path: attendance.xlsx
  sheet: Sheet1
  cache_ttl_sec: 10
http:
  addr: ":9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "workbook", cfg.Store.Backend)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, attendance.TimeOfDay{Hour: 9, Minute: 30}, cfg.AttendancePolicy().ClockInCutoff)
	assert.Equal(t, 10*time.Second, cfg.CacheTTL())
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	path := writeConfig(t, `
site:
  latitude: 37.0
  longitude: 127.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Site.RadiusM)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "10:00", cfg.Policy.ClockInCutoff)
}

func TestLoad_SchemaRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"latitude out of range", "site:\n  latitude: 91.0\n"},
		{"negative radius", "site:\n  radius_m: -5\n"},
		{"bad backend", "store:\n  backend: gsheet\n"},
		{"bad cutoff", "policy:\n  clock_in_cutoff: \"25:00\"\n"},
		{"empty name", "names:\n  - \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnknownTimezone(t *testing.T) {
	_, err := Load(writeConfig(t, "site:\n  timezone: Mars/Olympus\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAllowsName(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.AllowsName("홍길동"), "empty allow-list allows everyone")

	cfg.Names = []string{"홍길동", "김철수"}
	assert.True(t, cfg.AllowsName("홍길동"))
	assert.True(t, cfg.AllowsName(" 홍길동 "), "names are normalized before compare")
	assert.False(t, cfg.AllowsName("박영희"))
}
