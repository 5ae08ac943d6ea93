package model

import "testing"

func TestSetAndCheckPassword(t *testing.T) {
	user := &User{Username: "ravi", Role: RoleCaster}

	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	if !user.CheckPassword("secret123") {
		t.Error("expected correct password to verify")
	}
	if user.CheckPassword("wrong-password") {
		t.Error("expected wrong password to fail")
	}
}

func TestRoleIsWorker(t *testing.T) {
	for _, role := range WorkerRoles {
		if !role.IsWorker() {
			t.Errorf("%s should be a worker role", role)
		}
	}
	if RoleOwner.IsWorker() {
		t.Error("owner should not be a worker role")
	}
	if Role("manager").IsWorker() {
		t.Error("unknown role should not be a worker role")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleOwner.Valid() {
		t.Error("owner should be valid")
	}
	if Role("admin").Valid() {
		t.Error("admin should not be valid")
	}
}
