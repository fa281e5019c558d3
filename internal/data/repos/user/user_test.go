package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/blog-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, []*types.User{
		{
			Username: "lin",
			Email:    "userrepo@example.com",
			Password: "hash",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result: %+v", created)
	}

	byName, err := repo.GetByUsername(ctx, nil, " lin ")
	if err != nil || byName == nil || byName.Email != "userrepo@example.com" {
		t.Fatalf("GetByUsername=%+v,%v", byName, err)
	}
	missing, err := repo.GetByUsername(ctx, nil, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("GetByUsername (missing)=%+v,%v", missing, err)
	}

	exists, err := repo.EmailExists(ctx, nil, created[0].Email)
	if err != nil || !exists {
		t.Fatalf("EmailExists=%v,%v want true", exists, err)
	}
	exists, err = repo.UsernameExists(ctx, nil, "someone-else")
	if err != nil || exists {
		t.Fatalf("UsernameExists=%v,%v want false", exists, err)
	}

	if _, err := repo.Create(ctx, nil, []*types.User{{Username: "lin", Email: "other@example.com", Password: "x"}}); err == nil {
		t.Fatalf("expected unique violation for duplicate username")
	}
}
