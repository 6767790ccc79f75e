package env

import "testing"

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("VAULT_TEST_BLANK", "   ")
	if got := Get("VAULT_TEST_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("VAULT_TEST_SET", "value")
	if got := Get("VAULT_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestFirstOfPicksFirstSet(t *testing.T) {
	t.Setenv("VAULT_TEST_A", "")
	t.Setenv("VAULT_TEST_B", "b")
	if got := FirstOf("x", "VAULT_TEST_A", "VAULT_TEST_B"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := FirstOf("x", "VAULT_TEST_MISSING"); got != "x" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestInstanceIDPrefersExplicitID(t *testing.T) {
	t.Setenv("VAULT_INSTANCE_ID", "kiosk-front")
	t.Setenv("DYNO", "web.1")
	if got := InstanceID(); got != "kiosk-front" {
		t.Fatalf("expected explicit id, got %q", got)
	}
	t.Setenv("VAULT_INSTANCE_ID", "")
	if got := InstanceID(); got != "web.1" {
		t.Fatalf("expected dyno id, got %q", got)
	}
}
