package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"INFO":   zapcore.InfoLevel,
		" warn ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"bogus":  defaultZapLevel,
		"":       defaultZapLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := Nop()
	if OrNop(l) != l {
		t.Fatal("OrNop should return the given logger")
	}
	// must not panic
	OrNop(nil).Infow("discarded", "k", "v")
}

func TestNewEncoder_Formats(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.WarnLevel, Message: "alert_dropped"}
	fields := []zapcore.Field{zap.String("department", "Melting")}

	tests := []struct {
		format string
		want   []string
	}{
		{FormatJSON, []string{`"level":"warn"`, `"msg":"alert_dropped"`, `"department":"Melting"`}},
		{"JSON", []string{`"msg":"alert_dropped"`}},
		{FormatConsole, []string{"WARN", "alert_dropped", `{"department": "Melting"}`}},
		{"", []string{"WARN", "alert_dropped"}},
	}
	for _, tt := range tests {
		buf, err := newEncoder(tt.format).EncodeEntry(entry, fields)
		if err != nil {
			t.Fatalf("%q: encode: %v", tt.format, err)
		}
		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("%q: output %q missing %q", tt.format, out, w)
			}
		}
	}
}

func TestNewCore_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := zap.New(newCore(newEncoder(FormatJSON), zapcore.AddSync(&buf), toZapLevel("warn"))).Sugar()

	l.Infow("hidden")
	l.Warnw("shown", "k", 1)
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}
