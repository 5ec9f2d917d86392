package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("VerifyPassword() = false for correct password")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Error("VerifyPassword() = true for wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, _ := HashPassword("same input")
	h2, _ := HashPassword("same input")
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}
