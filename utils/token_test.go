package utils

import "testing"

func TestJwtRoundTrip(t *testing.T) {
	token, err := JwtGenerate("a@example.com")
	if err != nil {
		t.Fatalf("JwtGenerate error: %v", err)
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate error: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("expected a valid token")
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims.Email != "a@example.com" {
		t.Fatalf("expected email claim a@example.com, got %q", claims.Email)
	}
}

func TestJwtValidate_Garbage(t *testing.T) {
	if _, err := JwtValidate("not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}
