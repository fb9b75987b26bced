package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/weiawesome/wes-io-blog/internal/domain"
	"github.com/weiawesome/wes-io-blog/internal/repository"
	"github.com/weiawesome/wes-io-blog/internal/testutil"
)

type repos struct {
	db      *gorm.DB
	users   *repository.GormUserRepository
	posts   *repository.GormPostRepository
	follows *repository.GormFollowRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db := testutil.NewDB(t)
	return repos{
		db:      db,
		users:   repository.NewGormUserRepository(db),
		posts:   repository.NewGormPostRepository(db),
		follows: repository.NewGormFollowRepository(db),
	}
}

func mustUser(t *testing.T, r repos, name, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: email, PasswordHash: "hash"}
	if err := r.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustPost(t *testing.T, r repos, authorID, title string) *domain.Post {
	t.Helper()
	p := &domain.Post{Title: title, Body: "body of " + title, AuthorID: authorID}
	if err := r.posts.Create(context.Background(), p); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	u := mustUser(t, r, "Alice", "alice@x.com")
	if !domain.ValidID(u.ID) {
		t.Fatalf("expected uuid id, got %q", u.ID)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected non-zero CreatedAt")
	}

	byEmail, err := r.users.GetByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("unexpected user: %+v", byEmail)
	}

	if _, err := r.users.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	r := newRepos(t)
	mustUser(t, r, "Alice", "dup@x.com")

	err := r.users.Create(context.Background(), &domain.User{Name: "B", Email: "dup@x.com", PasswordHash: "h"})
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	other := mustUser(t, r, "Bob", "bob@x.com")
	other.Email = "dup@x.com"
	if err := r.users.Update(context.Background(), other); !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists on update, got %v", err)
	}
}

func TestUserRepo_UpdateTokens(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	u := mustUser(t, r, "Alice", "alice@x.com")

	if err := r.users.UpdateTokens(ctx, u.ID, []string{"a", "b"}); err != nil {
		t.Fatalf("update tokens: %v", err)
	}
	got, _ := r.users.GetByID(ctx, u.ID)
	if len(got.Tokens) != 2 || got.Tokens[0] != "a" || got.Tokens[1] != "b" {
		t.Fatalf("unexpected tokens: %v", got.Tokens)
	}

	if err := r.users.UpdateTokens(ctx, "missing", nil); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

var errDeleteRefused = errors.New("delete refused")

// failDeletesOn makes every delete against table fail inside gorm's callback chain.
func failDeletesOn(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Delete().Before("gorm:delete").Register("test:fail_delete_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errDeleteRefused)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func TestUserRepo_DeleteCascadeRollsBack(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	a := mustUser(t, r, "Alice", "alice@x.com")
	b := mustUser(t, r, "Bob", "bob@x.com")
	p1 := mustPost(t, r, a.ID, "one")
	mustPost(t, r, a.ID, "two")
	if err := r.posts.AppendComments(ctx, p1.ID, []domain.Comment{{Text: "hi", CreatedAt: time.Now()}}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := r.follows.Follow(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	failDeletesOn(t, r.db, "users")

	if err := r.users.DeleteCascade(ctx, a.ID); !errors.Is(err, errDeleteRefused) {
		t.Fatalf("expected injected error, got %v", err)
	}

	if _, err := r.users.GetByID(ctx, a.ID); err != nil {
		t.Fatalf("expected user to survive, got %v", err)
	}
	posts, err := r.posts.ListByAuthor(ctx, a.ID)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected both posts kept, got %d", len(posts))
	}
	got, err := r.posts.GetByID(ctx, p1.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if len(got.Comments) != 1 {
		t.Fatalf("expected comment kept, got %d", len(got.Comments))
	}
	followers, err := r.follows.ListFollowers(ctx, a.ID)
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 1 || followers[0] != b.ID {
		t.Fatalf("expected follow edge kept, got %v", followers)
	}
}

func TestUserRepo_DeleteCascade(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	a := mustUser(t, r, "Alice", "alice@x.com")
	b := mustUser(t, r, "Bob", "bob@x.com")
	p1 := mustPost(t, r, a.ID, "one")
	mustPost(t, r, a.ID, "two")
	mustPost(t, r, a.ID, "three")
	kept := mustPost(t, r, b.ID, "bob's")

	if err := r.posts.AppendComments(ctx, p1.ID, []domain.Comment{{Text: "hi", CreatedAt: time.Now()}}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := r.follows.Follow(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := r.follows.Follow(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("follow back: %v", err)
	}

	if err := r.users.DeleteCascade(ctx, a.ID); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	if _, err := r.users.GetByID(ctx, a.ID); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	remaining, err := r.posts.ListByAuthor(ctx, a.ID)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no posts for deleted author, got %d", len(remaining))
	}
	if _, err := r.posts.GetByID(ctx, kept.ID); err != nil {
		t.Fatalf("expected other author's post to survive: %v", err)
	}

	followers, _ := r.follows.ListFollowers(ctx, b.ID)
	following, _ := r.follows.ListFollowing(ctx, b.ID)
	if len(followers) != 0 || len(following) != 0 {
		t.Fatalf("expected follow rows removed, got followers=%v following=%v", followers, following)
	}

	if err := r.users.DeleteCascade(ctx, a.ID); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestPostRepo_AuthorPopulatedAndComments(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	a := mustUser(t, r, "Alice", "alice@x.com")
	p := mustPost(t, r, a.ID, "hello")
	if p.Author.Name != "Alice" {
		t.Fatalf("expected populated author on create, got %+v", p.Author)
	}

	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := r.posts.AppendComments(ctx, p.ID, []domain.Comment{
		{Text: "first", CreatedAt: t0},
		{Text: "second", CreatedAt: t0.Add(time.Minute)},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := r.posts.AppendComments(ctx, p.ID, []domain.Comment{{Text: "third", CreatedAt: t0}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := r.posts.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Author.ID != a.ID || got.Author.Name != "Alice" {
		t.Fatalf("unexpected author: %+v", got.Author)
	}
	want := []string{"first", "second", "third"}
	if len(got.Comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(got.Comments))
	}
	for i, w := range want {
		if got.Comments[i].Text != w {
			t.Fatalf("comment %d = %q, want %q", i, got.Comments[i].Text, w)
		}
	}

	if err := r.posts.AppendComments(ctx, "missing", []domain.Comment{{Text: "x"}}); !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostRepo_Ownership(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	a := mustUser(t, r, "Alice", "alice@x.com")
	b := mustUser(t, r, "Bob", "bob@x.com")
	p := mustPost(t, r, a.ID, "mine")

	p.Title = "stolen"
	if err := r.posts.UpdateOwned(ctx, p, b.ID); !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for non-owner update, got %v", err)
	}
	if _, err := r.posts.DeleteOwned(ctx, p.ID, b.ID); !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for non-owner delete, got %v", err)
	}

	p.Title = "renamed"
	if err := r.posts.UpdateOwned(ctx, p, a.ID); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if p.Title != "renamed" {
		t.Fatalf("expected refreshed post, got %q", p.Title)
	}

	deleted, err := r.posts.DeleteOwned(ctx, p.ID, a.ID)
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if deleted.ID != p.ID {
		t.Fatalf("unexpected deleted post %q", deleted.ID)
	}
	if _, err := r.posts.GetByID(ctx, p.ID); !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("expected post gone, got %v", err)
	}
}

func TestFollowRepo_Idempotent(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	a := mustUser(t, r, "Alice", "alice@x.com")
	b := mustUser(t, r, "Bob", "bob@x.com")

	for i := 0; i < 2; i++ {
		if err := r.follows.Follow(ctx, a.ID, b.ID); err != nil {
			t.Fatalf("follow #%d: %v", i+1, err)
		}
	}

	following, err := r.follows.ListFollowing(ctx, a.ID)
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	followers, err := r.follows.ListFollowers(ctx, b.ID)
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(following) != 1 || following[0] != b.ID {
		t.Fatalf("unexpected following: %v", following)
	}
	if len(followers) != 1 || followers[0] != a.ID {
		t.Fatalf("unexpected followers: %v", followers)
	}
}
