package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNFromLegacyParts(t *testing.T) {
	db := DBConfig{
		LegacyHost:     "localhost",
		LegacyPort:     5432,
		LegacyUser:     "medledger",
		LegacyPassword: "s3cret",
		LegacyName:     "medledger_dev",
		LegacySSLMode:  "disable",
	}
	if err := db.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, want := range []string{"postgres://", "medledger", "localhost:5432", "medledger_dev", "sslmode=disable"} {
		if !strings.Contains(db.DSN, want) {
			t.Errorf("DSN %q missing %q", db.DSN, want)
		}
	}
}

func TestEnsureDSNMissingParts(t *testing.T) {
	db := DBConfig{LegacyHost: "localhost"}
	if err := db.ensureDSN(); err == nil {
		t.Fatal("expected error when user and name are missing")
	}
}

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	db := DBConfig{DSN: "postgres://u:p@h:5432/db"}
	if err := db.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if db.DSN != "postgres://u:p@h:5432/db" {
		t.Fatalf("explicit DSN should be untouched, got %q", db.DSN)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "Development"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("Development should be dev, not prod")
	}
	app.Env = "production"
	if app.IsDev() || !app.IsProd() {
		t.Fatal("production should be prod")
	}
}
