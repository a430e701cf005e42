package user_test

import (
	"context"
	"testing"

	"github.com/aquagrid/aquagrid/internal/user"
)

func TestHashPassword_Verifies(t *testing.T) {
	hash, err := user.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("plaintext was stored unhashed")
	}
	if !user.VerifyPassword(hash, "s3cret-pass") {
		t.Error("hash does not verify against its plaintext")
	}
	if user.VerifyPassword(hash, "wrong-pass") {
		t.Error("hash verifies against the wrong plaintext")
	}
}

func TestSavePassword_UnchangedValueKeepsHash(t *testing.T) {
	service := user.NewService(user.NewInMemoryRepository())
	ctx := context.Background()

	u := register(t, service, "hash@example.com")
	passwordID, _ := u.Attrs["password"].(string)

	first, err := service.SavePassword(ctx, passwordID, mustHash(t, service, ctx, passwordID))
	if err != nil {
		t.Fatalf("resave: %v", err)
	}

	second, err := service.SavePassword(ctx, passwordID, first.Hash())
	if err != nil {
		t.Fatalf("resave: %v", err)
	}

	if first.Hash() != second.Hash() {
		t.Error("re-saving an unmodified password changed the stored hash")
	}
}

func TestSavePassword_ChangedValueRehashes(t *testing.T) {
	service := user.NewService(user.NewInMemoryRepository())
	ctx := context.Background()

	u := register(t, service, "rehash@example.com")
	passwordID, _ := u.Attrs["password"].(string)

	before, err := service.GetPassword(ctx, passwordID)
	if err != nil {
		t.Fatalf("get password: %v", err)
	}

	after, err := service.SavePassword(ctx, passwordID, "brand-new-pass")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if after.Hash() == before.Hash() {
		t.Error("changing the plaintext did not produce a new hash")
	}
	if !user.VerifyPassword(after.Hash(), "brand-new-pass") {
		t.Error("new hash does not verify against the new plaintext")
	}
}

func mustHash(t *testing.T, s *user.Service, ctx context.Context, passwordID string) string {
	t.Helper()
	p, err := s.GetPassword(ctx, passwordID)
	if err != nil {
		t.Fatalf("get password: %v", err)
	}
	return p.Hash()
}
