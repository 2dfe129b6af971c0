package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "VEHICLE_REGISTRY_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "configuration")
	requireMkdirAll(t, sub)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("VEHICLE_REGISTRY_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("VEHICLE_REGISTRY_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from repo root, got %q", got)
	}
}

func TestBackendOptions_Validate(t *testing.T) {
	cases := []struct {
		name    string
		opts    BackendOptions
		wantErr bool
	}{
		{"valid http", BackendOptions{BaseURL: "http://localhost:3000"}, false},
		{"valid https with timeout", BackendOptions{BaseURL: "https://api.example.com", RequestTimeout: 5 * time.Second}, false},
		{"missing scheme", BackendOptions{BaseURL: "localhost:3000"}, true},
		{"missing host", BackendOptions{BaseURL: "http://"}, true},
		{"negative timeout", BackendOptions{BaseURL: "http://localhost:3000", RequestTimeout: -time.Second}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %+v", tc.opts)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCsrfOptions_Validate(t *testing.T) {
	ok := CsrfOptions{Enabled: true, Secret: "0123456789abcdef0123456789abcdef"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	short := CsrfOptions{Enabled: true, Secret: "short"}
	if err := short.Validate(); err == nil {
		t.Fatal("expected error for short secret")
	}
	disabled := CsrfOptions{Enabled: false}
	if err := disabled.Validate(); err != nil {
		t.Fatalf("unexpected error when disabled: %v", err)
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
