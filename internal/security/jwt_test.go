package security_test

import (
	"testing"
	"time"

	"github.com/s84/movie-catalog/internal/security"
)

func TestAccessRoundTrip(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "John", "john@example.com", true, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	c, err := security.ParseAccess("s3cret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u1" || c.Email != "john@example.com" || c.Name != "John" || !c.IsAdmin {
		t.Fatalf("claims mismatch: %#v", c)
	}
}

func TestAccessWrongSecret(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "", "u@e.com", false, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("other", tok); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestAccessExpired(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "", "u@e.com", false, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("s3cret", tok); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := security.HashPassword("pw123456")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "pw123456" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !security.CheckPassword(hash, "pw123456") {
		t.Fatal("correct password rejected")
	}
	if security.CheckPassword(hash, "pw1234567") {
		t.Fatal("wrong password accepted")
	}
}
