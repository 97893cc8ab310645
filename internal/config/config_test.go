package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "5000")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.JWT.ExpireHour != 168 {
		t.Errorf("JWT.ExpireHour = %d, expected 168", cfg.JWT.ExpireHour)
	}
	if cfg.CORS.Origin != "http://localhost:5173" {
		t.Errorf("CORS.Origin = %q", cfg.CORS.Origin)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: "8080"
  mode: release
database:
  driver: postgres
  dsn: host=localhost user=gigflow dbname=gigflow
jwt:
  secret: file-secret
  expire_hour: 24
cors:
  origin: https://app.example.com
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "8080")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, "postgres")
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("JWT.ExpireHour = %d, expected 24", cfg.JWT.ExpireHour)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_EXPIRE_HOUR", "48")
	t.Setenv("FRONTEND_URL", "https://front.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, expected env override", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, expected env override", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireHour != 48 {
		t.Errorf("JWT.ExpireHour = %d, expected 48", cfg.JWT.ExpireHour)
	}
	if cfg.CORS.Origin != "https://front.example.com" {
		t.Errorf("CORS.Origin = %q, expected env override", cfg.CORS.Origin)
	}
}

func TestLoad_InvalidExpireHourIgnored(t *testing.T) {
	t.Setenv("JWT_EXPIRE_HOUR", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.JWT.ExpireHour != 168 {
		t.Errorf("JWT.ExpireHour = %d, bad env value should keep the default", cfg.JWT.ExpireHour)
	}
}
