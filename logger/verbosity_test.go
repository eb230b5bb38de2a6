package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{3, zapcore.DebugLevel},
		{10, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		if got := VerbosityToLevel(tc.verbosity); got != tc.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tc.verbosity, got, tc.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	if Logger == nil {
		t.Fatal("package init left the logger nil")
	}
	if err := Initialize(true, VerbosityDebug); err != nil {
		t.Fatalf("Initialize(json) failed: %v", err)
	}
	if !JSONOutput {
		t.Error("JSONOutput not recorded")
	}
	if err := Initialize(false, VerbosityUser); err != nil {
		t.Fatalf("Initialize(console) failed: %v", err)
	}
	Named("test").Debugw("suppressed at user verbosity")
}
