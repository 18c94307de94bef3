package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config whose cutoffs make any wall-clock time an
// on-time clock-in and clock-out, so assertions do not depend on when the
// test runs. Returns the config path.
func writeTestConfig(t *testing.T, names string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "chulgeun.yaml")
	dbPath := filepath.Join(dir, "attendance.db")

	cfg := fmt.Sprintf(`site:
  latitude: 37.456461
  longitude: 126.952096
  radius_m: 100
  timezone: UTC
policy:
  clock_in_cutoff: "23:59"
  clock_out_cutoff: "00:00"
names: %s
store:
  backend: sqlite
  path: %s
  cache_ttl_sec: 10
`, names, dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

// execute runs a fresh root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecordInAndStatus(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	out, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.NoError(t, err)
	assert.Contains(t, out, "홍길동")
	assert.Contains(t, out, "출근")

	out, err = execute(t, "--config", cfgPath, "--format", "json", "status", "--name", "홍길동")
	require.NoError(t, err)

	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, true, st["clocked_in"])
	assert.Equal(t, false, st["clocked_out"])
}

func TestRecordInDuplicateRejected(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	_, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.NoError(t, err)

	_, err = execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitRejected, exitErr.Code)
}

func TestRecordInOutOfRadius(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	// Seoul City Hall, ~13km from the site.
	_, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.5665", "--lon", "126.9780")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitRejected, exitErr.Code)
	assert.Contains(t, exitErr.Message, "out of radius")
}

func TestRecordUnknownNameRejected(t *testing.T) {
	cfgPath := writeTestConfig(t, `["홍길동"]`)

	_, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "김철수", "--lat", "37.456461", "--lon", "126.952096")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitRejected, exitErr.Code)
}

func TestRecordAbsentWithoutLocation(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	out, err := execute(t, "--config", cfgPath, "record", "absent",
		"--name", "홍길동", "--reason", "병가")
	require.NoError(t, err)
	assert.Contains(t, out, "결근")

	out, err = execute(t, "--config", cfgPath, "--format", "json", "status", "--name", "홍길동")
	require.NoError(t, err)

	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, true, st["absent"])
}

func TestReportAfterClockInAndOut(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	_, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.NoError(t, err)
	_, err = execute(t, "--config", cfgPath, "record", "out",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgPath, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "홍길동")
	assert.Contains(t, out, "출근 1일")
}

func TestReportRawNewestFirst(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	_, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.NoError(t, err)
	_, err = execute(t, "--config", cfgPath, "record", "absent",
		"--name", "김철수", "--reason", "병가")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgPath, "report", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "홍길동")
	assert.Contains(t, out, "김철수")
}

func TestExportWritesBOMCSV(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	_, err := execute(t, "--config", cfgPath, "record", "in",
		"--name", "홍길동", "--lat", "37.456461", "--lon", "126.952096")
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "report.csv")
	_, err = execute(t, "--config", cfgPath, "export", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "BOM for spreadsheet apps")
	assert.Contains(t, string(data), "이름")
	assert.Contains(t, string(data), "홍길동")
}

func TestExportRejectsBadMonth(t *testing.T) {
	cfgPath := writeTestConfig(t, "[]")

	_, err := execute(t, "--config", cfgPath, "export", "--year", "2026", "--month", "13")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitCommandError, exitErr.Code)
}

func TestStatusMissingStoreStillEmpty(t *testing.T) {
	// A fresh database has no rows; status derives all-false.
	cfgPath := writeTestConfig(t, "[]")

	out, err := execute(t, "--config", cfgPath, "--format", "json", "status", "--name", "홍길동")
	require.NoError(t, err)

	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, false, st["clocked_in"])
	assert.Equal(t, false, st["clocked_out"])
	assert.Equal(t, false, st["absent"])
}
