package utils

import "testing"

func TestGetEnv(t *testing.T) {
	if got := GetEnv("YV_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("missing var: got %q", got)
	}
	t.Setenv("YV_TEST_STR", "set")
	if got := GetEnv("YV_TEST_STR", "fallback", nil); got != "set" {
		t.Fatalf("set var: got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	if got := GetEnvAsInt("YV_TEST_MISSING", 7, nil); got != 7 {
		t.Fatalf("missing var: got %d", got)
	}
	t.Setenv("YV_TEST_INT", "42")
	if got := GetEnvAsInt("YV_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("set var: got %d", got)
	}
	t.Setenv("YV_TEST_INT", "not-a-number")
	if got := GetEnvAsInt("YV_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("unparseable var: got %d", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	if got := GetEnvAsBool("YV_TEST_MISSING", true, nil); !got {
		t.Fatal("missing var: expected default true")
	}
	t.Setenv("YV_TEST_BOOL", "true")
	if got := GetEnvAsBool("YV_TEST_BOOL", false, nil); !got {
		t.Fatal("true var: expected true")
	}
	t.Setenv("YV_TEST_BOOL", "0")
	if got := GetEnvAsBool("YV_TEST_BOOL", true, nil); got {
		t.Fatal("zero var: expected false")
	}
	t.Setenv("YV_TEST_BOOL", "not-a-bool")
	if got := GetEnvAsBool("YV_TEST_BOOL", true, nil); !got {
		t.Fatal("unparseable var: expected default true")
	}
}
