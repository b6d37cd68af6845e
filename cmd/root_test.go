package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-answer/internal/words"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-05")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	got, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	want := "wordle-answer 1.2.3 (commit: abc123, built: 2026-01-05)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAdminToken(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "cli-secret")

	out, err := run(t, "admin-token", "--subject", "ops")
	if err != nil {
		t.Fatalf("admin-token: %v", err)
	}
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("cli-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["sub"] != "ops" || claims["role"] != "admin" {
		t.Errorf("unexpected claims %v", claims)
	}
}

func TestAdminTokenNeedsSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")
	if _, err := run(t, "admin-token"); err == nil {
		t.Error("expected an error without ADMIN_JWT_SECRET")
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []words.Record{
		{Date: "2026-01-05", PuzzleNumber: 1661, Answer: "CRANE"},
		{Date: "2026-01-04", PuzzleNumber: 1660, Answer: "SLATE"},
	})
	out := buf.String()
	for _, want := range []string{"DATE", "2026-01-05", "1661", "CRANE", "SLATE", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	setupLogging("warn", "json")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("got %v", zerolog.GlobalLevel())
	}
	setupLogging("loud", "json")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("unknown level should keep warn, got %v", zerolog.GlobalLevel())
	}
}

func TestPrintGuess(t *testing.T) {
	var buf bytes.Buffer
	if err := printGuess(&buf, "CRANE", "react"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "🟨🟨🟩🟨⬜\n" {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	if err := printGuess(&buf, "CRANE", "crane"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "🟩🟩🟩🟩🟩\nsolved\n" {
		t.Errorf("got %q", got)
	}

	if err := printGuess(&buf, "CRANE", "cr"); err == nil {
		t.Error("expected invalid guess error")
	}
}
