package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// initOnce sets up the global logger for the whole package test run.
func initTestLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fling.log")
	// The global logger is initialized once per process; subsequent calls
	// reuse it, so read back through the logger's own file handle.
	cleanup, err := Init(path)
	if err == nil {
		t.Cleanup(cleanup)
	}
	return path
}

func readLoggerFile(t *testing.T) string {
	t.Helper()
	require.NotNil(t, defaultLogger)
	data, err := os.ReadFile(defaultLogger.file.Name())
	require.NoError(t, err)
	return string(data)
}

func TestLogWritesStructuredLine(t *testing.T) {
	initTestLogger(t)
	SetEnabled(true)
	SetMinLevel(LevelDebug)

	Info(CatScan, "scanned directory", "dir", "/usr/share/applications", "found", 12)

	content := readLoggerFile(t)
	require.Contains(t, content, "[INFO] [scan] scanned directory")
	require.Contains(t, content, "dir=/usr/share/applications")
	require.Contains(t, content, "found=12")
}

func TestLogRespectsMinLevel(t *testing.T) {
	initTestLogger(t)
	SetEnabled(true)
	SetMinLevel(LevelWarn)
	defer SetMinLevel(LevelDebug)

	Debug(CatParse, "this line should be filtered out entirely")

	content := readLoggerFile(t)
	require.NotContains(t, content, "this line should be filtered out entirely")
}

func TestLogDisabled(t *testing.T) {
	initTestLogger(t)
	SetEnabled(false)
	defer SetEnabled(true)

	Error(CatLaunch, "disabled logger should drop this")

	content := readLoggerFile(t)
	require.NotContains(t, content, "disabled logger should drop this")
}

func TestErrorErrAppendsError(t *testing.T) {
	initTestLogger(t)
	SetEnabled(true)
	SetMinLevel(LevelDebug)

	ErrorErr(CatCache, "cache open failed", os.ErrPermission, "path", "/tmp/x")

	content := readLoggerFile(t)
	require.Contains(t, content, "[ERROR] [cache] cache open failed")
	require.Contains(t, content, "error="+os.ErrPermission.Error())
}

func TestOddFieldCount(t *testing.T) {
	initTestLogger(t)
	SetEnabled(true)
	SetMinLevel(LevelDebug)

	Warn(CatUI, "odd fields", "orphan")

	content := readLoggerFile(t)
	require.Contains(t, content, "orphan=<missing>")
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.True(t, strings.HasPrefix(Level(99).String(), "UNKNOWN"))
}
