package utils

import (
	"testing"

	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	user := &models.User{
		Email: "alice@gct.ac.in",
		Role:  string(models.RoleStudent),
	}
	user.ID = 7

	token, err := GenerateToken(user, "test-secret")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	parsed, err := ValidateToken(token, "test-secret")
	if err != nil || !parsed.Valid {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["id"].(float64) != 7 {
		t.Errorf("id claim = %v, want 7", claims["id"])
	}
	if claims["email"] != user.Email {
		t.Errorf("email claim = %v, want %s", claims["email"], user.Email)
	}
	if claims["role"] != string(models.RoleStudent) {
		t.Errorf("role claim = %v, want STUDENT", claims["role"])
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{Email: "alice@gct.ac.in", Role: string(models.RoleStudent)}
	user.ID = 1

	token, err := GenerateToken(user, "test-secret")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("a token signed with a different secret must not validate")
	}
}
