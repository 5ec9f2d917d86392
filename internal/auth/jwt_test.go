package auth

import (
	"testing"

	"payfam-backend/internal/config"
	"payfam-backend/internal/models"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "payfam-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret"))

	memberID := 7
	user := &models.User{
		ID:       3,
		Email:    "manager@example.com",
		Role:     models.RoleMember,
		MemberID: &memberID,
	}

	token, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != 3 {
		t.Errorf("UserID = %d, want 3", claims.UserID)
	}
	if claims.Email != "manager@example.com" {
		t.Errorf("Email = %q, want manager@example.com", claims.Email)
	}
	if claims.Role != models.RoleMember {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleMember)
	}
	if claims.MemberID == nil || *claims.MemberID != 7 {
		t.Errorf("MemberID = %v, want 7", claims.MemberID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig("secret-a"))
	other := NewJWTManager(testConfig("secret-b"))

	token, err := manager.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret"))
	if _, err := manager.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}
