package auth

import (
	"testing"
	"time"

	"github.com/sanarehealth/medledger-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "medledger-test",
		ExpirationMinutes: 1440,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		SubjectID: "HOSP-ABC123-XYZ789",
		Email:     "ops@general.example",
		Role:      RoleHospital,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.SubjectID != "HOSP-ABC123-XYZ789" {
		t.Errorf("subject id = %q", claims.SubjectID)
	}
	if claims.Role != RoleHospital {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		SubjectID: "PAT-1",
		Role:      RolePatient,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("token signed with another secret should not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-48*time.Hour), AccessTokenPayload{
		SubjectID: "PAT-1",
		Role:      RolePatient,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expired token should not parse")
	}
}

func TestMintValidatesInput(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: RolePatient}); err == nil {
		t.Fatal("missing subject id should fail")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{SubjectID: "PAT-1", Role: Role("admin")}); err == nil {
		t.Fatal("unknown role should fail")
	}
}
