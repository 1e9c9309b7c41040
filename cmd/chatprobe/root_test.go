package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/metalagman/chatprobe"
	"github.com/spf13/cobra"
)

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd == nil {
		t.Fatal("newRootCmd() returned nil")
	}

	if cmd.Name() != "chatprobe" {
		t.Errorf("expected name 'chatprobe', got '%s'", cmd.Name())
	}

	for _, sub := range []string{"scenario", "fixture"} {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == sub {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %s not found", sub)
		}
	}
}

func TestSendPrintsAgentAndResponse(t *testing.T) {
	var got chatprobe.Payload

	startChat(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"agent":"Sales","response":"Hello there"}`))
	})

	stdout, _, err := execute(t, `price of "deluxe" room?`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if stdout != "AGENT: Sales\nRESPONSE: Hello there\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if got.UserID != chatprobe.DefaultUserID {
		t.Errorf("user_id = %q", got.UserID)
	}
	if got.Message != `price of "deluxe" room?` {
		t.Errorf("message = %q", got.Message)
	}
}

func TestSendUserIDArgument(t *testing.T) {
	var got chatprobe.Payload

	startChat(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"response":"no agent here"}`))
	})

	stdout, _, err := execute(t, "hi", "tester_42")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got.UserID != "tester_42" {
		t.Errorf("user_id = %q", got.UserID)
	}
	if stdout != "AGENT: UNKNOWN\nRESPONSE: no agent here\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestSendTruncatesResponse(t *testing.T) {
	long := strings.Repeat("x", 450)

	startChat(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "broker", "response": long})
	})

	stdout, _, err := execute(t, "hi")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := "AGENT: broker\nRESPONSE: " + strings.Repeat("x", 300) + "\n"
	if stdout != want {
		t.Fatalf("stdout has %d bytes, want %d", len(stdout), len(want))
	}
}

func TestSendServerDownExitsCleanly(t *testing.T) {
	overrideEndpoint(t, "http://127.0.0.1:1/chat")

	stdout, _, err := execute(t, "hi")
	if err != nil {
		t.Fatalf("send must not fail on transport errors: %v", err)
	}

	if !strings.HasPrefix(stdout, "AGENT: PARSE_ERROR\nRESPONSE: ") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestSendRequiresMessage(t *testing.T) {
	_, _, err := execute(t)
	if err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("expected usage error, got %v", err)
	}

	_, _, err = execute(t, "a", "b", "c")
	if err == nil {
		t.Fatal("expected error for too many args")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level=loud", "hi")
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestDebugLogsGoToStderr(t *testing.T) {
	startChat(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"agent":"a","response":"b"}`))
	})

	stdout, stderr, err := execute(t, "--log-level=debug", "hi")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if stdout != "AGENT: a\nRESPONSE: b\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "chat reply received") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestEnvFileSetsTimeout(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "probe.env")
	if err := os.WriteFile(envFile, []byte("CHATPROBE_TIMEOUT=1500ms\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CHATPROBE_TIMEOUT", "")
	os.Unsetenv("CHATPROBE_TIMEOUT")

	var captured time.Duration

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", envFile, "hi"})
	cmd.RunE = func(c *cobra.Command, _ []string) error {
		captured = resolveTimeout(c, 0, chatprobe.LoadConfig().Timeout)
		return nil
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if captured != 1500*time.Millisecond {
		t.Fatalf("timeout = %s", captured)
	}
}

func TestFixtureCmd(t *testing.T) {
	stdout, _, err := execute(t, "fixture", "line\nbreak", "u9")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	p, err := chatprobe.DecodePayload([]byte(stdout))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.UserID != "u9" || p.Message != "line\nbreak" {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if p.AccountValues.BrandName != "OxOtel" {
		t.Fatalf("fixture missing: %+v", p.AccountValues)
	}
}
