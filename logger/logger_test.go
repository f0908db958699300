package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		verbosity  int
		jsonOutput bool
		wantErr    bool
	}{
		{
			name:       "JSON output mode",
			verbosity:  VerbosityInfo,
			jsonOutput: true,
			wantErr:    false,
		},
		{
			name:       "Console output mode",
			verbosity:  VerbosityInfo,
			jsonOutput: false,
			wantErr:    false,
		},
		{
			name:       "Silent mode",
			verbosity:  VerbosityUser,
			jsonOutput: false,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global logger
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.verbosity, tt.jsonOutput, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if Logger == nil {
					t.Error("Initialize() did not set global Logger")
				}
				if JSONOutput != tt.jsonOutput {
					t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
				}
			}

			// Cleanup
			if Logger != nil {
				Logger.Sync()
				Logger = nil
			}
		})
	}
}

func TestInitializeWithLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "cqlls.log")

	Logger = nil
	if err := Initialize(VerbosityInfo, false, logFile); err != nil {
		t.Fatalf("Initialize() with log file error = %v", err)
	}
	defer func() {
		Cleanup()
		Logger = nil
	}()

	Infow("file sink smoke test", "key", "value")
	Cleanup()

	info, err := os.Stat(logFile)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty after writing")
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zapcore.Level
	}{
		{"user level", VerbosityUser, zapcore.WarnLevel},
		{"info level", VerbosityInfo, zapcore.InfoLevel},
		{"debug level", VerbosityDebug, zapcore.DebugLevel},
		{"trace level", VerbosityTrace, zapcore.DebugLevel},
		{"all level", VerbosityAll, zapcore.DebugLevel},
		{"beyond all", VerbosityAll + 3, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerbosityToLevel(tt.verbosity); got != tt.want {
				t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
			}
		})
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(VerbosityDebug); got != "Debug (-vv)" {
		t.Errorf("LevelName(VerbosityDebug) = %q", got)
	}
	if got := LevelName(VerbosityAll + 1); got != "All (-vvvv+)" {
		t.Errorf("LevelName(beyond all) = %q", got)
	}
	if got := LevelName(-1); got != "Unknown" {
		t.Errorf("LevelName(-1) = %q", got)
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name        string
		setupLogger bool
	}{
		{
			name:        "Cleanup with initialized logger",
			setupLogger: true,
		},
		{
			name:        "Cleanup with nil logger (should not panic)",
			setupLogger: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupLogger {
				Logger = newTestLogger(t)
			} else {
				Logger = nil
			}

			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Cleanup() panicked unexpectedly: %v", r)
				}
			}()

			Cleanup()

			if tt.setupLogger && Logger == nil {
				t.Error("Cleanup() should not nil out the logger")
			}

			Logger = nil
		})
	}
}

// newTestLogger creates a logger for testing without modifying global state
func newTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return zapLogger.Sugar()
}

// TestLoggingFunctions tests the package-level logging functions
func TestLoggingFunctions(t *testing.T) {
	Logger = newTestLogger(t)
	defer func() {
		if Logger != nil {
			Logger.Sync()
			Logger = nil
		}
	}()

	t.Run("Info functions", func(t *testing.T) {
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
	})

	t.Run("Error functions", func(t *testing.T) {
		Error("test")
		Errorf("test %s", "format")
		Errorw("test", "key", "value")
	})

	t.Run("Warn functions", func(t *testing.T) {
		Warn("test")
		Warnf("test %s", "format")
		Warnw("test", "key", "value")
	})

	t.Run("Debug functions", func(t *testing.T) {
		Debug("test")
		Debugf("test %s", "format")
		Debugw("test", "key", "value")
	})

	t.Run("With nil logger (should not panic)", func(t *testing.T) {
		Logger = nil

		// All these should be safe to call with nil logger
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Error("test")
		Errorf("test %s", "format")
		Errorw("test", "key", "value")
		Warn("test")
		Warnf("test %s", "format")
		Warnw("test", "key", "value")
		Debug("test")
		Debugf("test %s", "format")
		Debugw("test", "key", "value")
	})
}

func TestComponentLogger(t *testing.T) {
	Logger = newTestLogger(t)
	defer func() {
		Logger.Sync()
		Logger = nil
	}()

	named := ComponentLogger("complete")
	if named == nil {
		t.Fatal("ComponentLogger() returned nil")
	}
	named.Infow("component smoke test", FieldStrategy, "keywords")

	child := ChildLogger(named, FieldURI, "file:///a.cql")
	if child == nil {
		t.Fatal("ChildLogger() returned nil")
	}
	child.Debugw("child smoke test")
}

// BenchmarkInfow benchmarks structured Info logging
func BenchmarkInfow(b *testing.B) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	config.OutputPaths = []string{os.DevNull}

	zapLogger, err := config.Build()
	if err != nil {
		b.Fatalf("Failed to create benchmark logger: %v", err)
	}
	Logger = zapLogger.Sugar()
	defer func() {
		Logger.Sync()
		Logger = nil
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Infow("test message", "iteration", i, "key", "value")
	}
}
