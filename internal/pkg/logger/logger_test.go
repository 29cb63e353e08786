package logger

import "testing"

func TestRedactSensitiveKeys(t *testing.T) {
	in := []interface{}{
		"plant_id", "abc",
		"Token", "jwt-goes-here",
		"api_key", "owm-key",
		"attempt", 2,
	}
	out := redact(in)

	if out[1] != "abc" || out[7] != 2 {
		t.Fatalf("benign values changed: %v", out)
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("token not redacted: %v", out[3])
	}
	if out[5] != "[REDACTED]" {
		t.Fatalf("api_key not redacted: %v", out[5])
	}
	if in[3] != "jwt-goes-here" {
		t.Fatalf("redact mutated the caller's slice")
	}
}

func TestRedactPassesThroughClean(t *testing.T) {
	in := []interface{}{"service", "PlantService", "count", 3}
	out := redact(in)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("clean pair list changed at %d: %v", i, out[i])
		}
	}
}

func TestRedactOddAndNonStringKeys(t *testing.T) {
	in := []interface{}{42, "not-a-key", "secret"}
	out := redact(in)
	if out[1] != "not-a-key" || out[2] != "secret" {
		t.Fatalf("odd-length list mangled: %v", out)
	}
}
