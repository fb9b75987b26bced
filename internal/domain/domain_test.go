package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPatch_Disallowed(t *testing.T) {
	p := Patch{"title": json.RawMessage(`"a"`), "body": json.RawMessage(`"b"`)}
	if k := p.Disallowed(PostPatchFields); k != "" {
		t.Fatalf("unexpected disallowed key %q", k)
	}

	p["views"] = json.RawMessage(`3`)
	if k := p.Disallowed(PostPatchFields); k != "views" {
		t.Fatalf("expected views, got %q", k)
	}
}

func TestPatch_Decode(t *testing.T) {
	p := Patch{"name": json.RawMessage(`" Ada "`), "email": json.RawMessage(`"ADA@X.com"`)}

	var req UpdateUserRequest
	if err := p.Decode(&req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	req.Normalize()

	if req.Name == nil || *req.Name != "Ada" {
		t.Fatalf("unexpected name: %v", req.Name)
	}
	if req.Email == nil || *req.Email != "ada@x.com" {
		t.Fatalf("unexpected email: %v", req.Email)
	}
	if req.Password != nil {
		t.Fatal("expected password to stay nil")
	}
}

func TestUserResponse_OmitsSecrets(t *testing.T) {
	u := &User{
		ID:           "u1",
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Tokens:       []string{"t1"},
		Following:    []string{"u2"},
	}

	data, err := json.Marshal(u.ToResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, banned := range []string{"password", "hash", "tokens", "t1"} {
		if strings.Contains(s, banned) {
			t.Fatalf("response leaks %q: %s", banned, s)
		}
	}
	if !strings.Contains(s, `"following":[{"user":"u2"}]`) {
		t.Fatalf("missing following refs: %s", s)
	}
}

func TestValidID(t *testing.T) {
	if ValidID("not-an-id") {
		t.Fatal("expected malformed id to be rejected")
	}
	if !ValidID("6f1c1f4e-3f43-4f0e-9d6c-1a2b3c4d5e6f") {
		t.Fatal("expected uuid to be accepted")
	}
}
