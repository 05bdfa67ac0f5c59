package auth

import (
	"context"
	"errors"
	"testing"

	"snatchup/kv"
)

func newBackend() *MockIdentity {
	return NewMockIdentity(kv.NewMemory(), 0)
}

func TestLoginHardcodedCredentials(t *testing.T) {
	ctx := context.Background()
	id := newBackend()

	user, err := id.Login(ctx, "test@gmail.com", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.UserID != "u1" || user.FirstName != "Test" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := id.Login(ctx, "test@gmail.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := id.Login(ctx, "nobody@example.com", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	id := newBackend()

	input := RegisterInput{
		Email:     "alice@example.com",
		Password:  "s3cret",
		FirstName: "Alice",
		LastName:  "Smith",
	}
	user, err := id.Register(ctx, input)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.UserID == "" || user.UserID == "u1" {
		t.Fatalf("expected fabricated user id, got %q", user.UserID)
	}

	got, err := id.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
	if got.UserID != user.UserID {
		t.Fatalf("expected same account, got %s vs %s", got.UserID, user.UserID)
	}

	if _, err := id.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	id := newBackend()

	if _, err := id.Register(ctx, RegisterInput{Email: "test@gmail.com", Password: "x"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("hardcoded email should collide, got %v", err)
	}

	if _, err := id.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "x"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := id.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "y"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected duplicate registration to fail, got %v", err)
	}
}

func TestUpdatePersistsRegisteredUsers(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	id := NewMockIdentity(backing, 0)

	user, _ := id.Register(ctx, RegisterInput{Email: "carol@example.com", Password: "x", FirstName: "Carol"})
	if _, err := id.Update(ctx, user.UserID, ProfileInput{Address: "1 Main St"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// a fresh backend over the same kv sees the edit
	fresh := NewMockIdentity(backing, 0)
	got, err := fresh.Resolve(ctx, user.UserID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.Address != "1 Main St" || got.FirstName != "Carol" {
		t.Fatalf("expected persisted edit, got %+v", got)
	}
}

func TestUpdateTestUserIsSessionOnly(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	id := NewMockIdentity(backing, 0)

	if _, err := id.Update(ctx, "u1", ProfileInput{Phone: "555-0100"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := id.Resolve(ctx, "u1")
	if got.Phone != "555-0100" {
		t.Fatalf("edit should be visible this session, got %+v", got)
	}

	// a restart loses it
	fresh := NewMockIdentity(backing, 0)
	got, _ = fresh.Resolve(ctx, "u1")
	if got.Phone != "" {
		t.Fatalf("test user edits must not persist, got %+v", got)
	}
}

func TestResolveUnknownUser(t *testing.T) {
	ctx := context.Background()
	id := newBackend()

	if _, err := id.Resolve(ctx, "u-nope"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	id := newBackend()

	user, _ := id.Register(ctx, RegisterInput{Email: "dan@example.com", Password: "x", FirstName: "Dan", LastName: "Jones"})
	got, err := id.Update(ctx, user.UserID, ProfileInput{LastName: "Smith"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.FirstName != "Dan" || got.LastName != "Smith" {
		t.Fatalf("expected merge to keep unset fields, got %+v", got)
	}
}
