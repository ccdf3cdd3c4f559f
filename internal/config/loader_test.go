package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: :9999
log_level: debug
observer_timeout_seconds: 3
directory_name: ContactDirectory
seed:
  - name: Bob
    email: bob@example.com
observers:
  - http://127.0.0.1:9001/events
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.LogLevel != "debug" || cfg.ObserverTimeoutSeconds != 3 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Seed) != 1 || cfg.Seed[0].Name != "Bob" || cfg.Seed[0].Email != "bob@example.com" {
		t.Fatalf("unexpected seed: %+v", cfg.Seed)
	}
	if len(cfg.Observers) != 1 || cfg.DirectoryName != "ContactDirectory" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json",
		`{"addr":":7070","seed":[{"name":"A","email":"a@x.com"}],"cors":{"enabled":true,"allowed_origins":["*"]}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || len(cfg.Seed) != 1 || !cfg.CORS.Enabled || len(cfg.CORS.AllowedOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlog_level=\"info\"\nmax_body_bytes=2048\n\n[[seed]]\nname=\"B\"\nemail=\"b@x.com\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LogLevel != "info" || cfg.MaxBodyBytes != 2048 || len(cfg.Seed) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}
