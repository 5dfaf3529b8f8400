package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"ogsvg/internal/models"
)

func strp(s string) *string { return &s }

func TestContentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	created := createPost(t, db, &models.Content{
		Title:  "Test Post",
		Body:   "Test body",
		Status: models.ContentStatusDraft,
	})

	if created.ID == 0 {
		t.Error("expected a generated id")
	}
	if created.PublishedAt != nil {
		t.Error("expected nil published_at for draft")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Title != "Test Post" {
		t.Fatalf("FindByID: got %+v", found)
	}

	missing, err := s.FindByID(-1)
	if err != nil {
		t.Fatalf("FindByID missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for a missing item")
	}
}

func TestContentStorePostMeta(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	cats := NewCategoryStore(db)

	email := "author-" + suffix() + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })
	author, err := NewUserStore(db).Create(email, "Ana Pop")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	published := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	post := createPost(t, db, &models.Content{
		Title:            "Shipping a Go service",
		Body:             "Body text",
		Excerpt:          strp("Short excerpt"),
		Status:           models.ContentStatusPublished,
		AuthorID:         &author.ID,
		FeaturedImageURL: strp("https://cdn.example.com/cover.jpg"),
		PublishedAt:      &published,
	})

	var ids []uuid.UUID
	for _, name := range []string{"Zeta", "Alpha"} {
		c, err := cats.Create(&models.Category{Name: name + " " + suffix()})
		if err != nil {
			t.Fatalf("create category: %v", err)
		}
		t.Cleanup(func() { cats.Delete(c.ID) })
		ids = append(ids, c.ID)
	}
	if err := cats.Assign(post.ID, ids...); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	meta, err := s.PostMeta(post.ID)
	if err != nil {
		t.Fatalf("PostMeta: %v", err)
	}
	if meta == nil {
		t.Fatal("PostMeta: got nil")
	}
	if meta.Title != "Shipping a Go service" || meta.Excerpt != "Short excerpt" || meta.AuthorName != "Ana Pop" {
		t.Errorf("got %+v", meta)
	}
	if meta.FeaturedImageURL != "https://cdn.example.com/cover.jpg" {
		t.Errorf("featured image: got %q", meta.FeaturedImageURL)
	}
	if meta.PublishedAt == nil || !meta.PublishedAt.Equal(published) {
		t.Errorf("published_at: got %v, want %v", meta.PublishedAt, published)
	}
	if len(meta.Categories) != 2 || meta.Categories[0][:4] != "Zeta" {
		t.Errorf("categories should keep assignment order: got %v", meta.Categories)
	}
}

func TestContentStorePostMetaHidesDrafts(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	draft := createPost(t, db, &models.Content{Title: "Draft", Status: models.ContentStatusDraft})
	meta, err := s.PostMeta(draft.ID)
	if err != nil {
		t.Fatalf("PostMeta: %v", err)
	}
	if meta != nil {
		t.Error("drafts must not be exposed")
	}

	// Items without author or categories still load.
	bare := createPost(t, db, &models.Content{Title: "Bare", Status: models.ContentStatusPublished})
	meta, err = s.PostMeta(bare.ID)
	if err != nil {
		t.Fatalf("PostMeta: %v", err)
	}
	if meta == nil || meta.AuthorName != "" || len(meta.Categories) != 0 || meta.PublishedAt == nil {
		t.Errorf("got %+v", meta)
	}
}

func TestContentStoreThemeOverride(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	post := createPost(t, db, &models.Content{Title: "Override", Status: models.ContentStatusPublished})

	tests := []struct {
		set  string
		want string
	}{
		{"dark-author", "dark-author"},
		{"  minimal  ", "minimal"},
		{"", ""},
	}
	for _, tt := range tests {
		if err := s.SetThemeOverride(post.ID, tt.set); err != nil {
			t.Fatalf("SetThemeOverride(%q): %v", tt.set, err)
		}
		got, err := s.ThemeOverride(post.ID)
		if err != nil {
			t.Fatalf("ThemeOverride: %v", err)
		}
		if got != tt.want {
			t.Errorf("after SetThemeOverride(%q): got %q, want %q", tt.set, got, tt.want)
		}
	}

	if got, err := s.ThemeOverride(-1); err != nil || got != "" {
		t.Errorf("missing item: got %q, %v", got, err)
	}
}

func TestCategoryStoreAssignReplaces(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	post := createPost(t, db, &models.Content{Title: "Cats", Status: models.ContentStatusPublished})

	a, err := cats.Create(&models.Category{Name: "First " + suffix()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cats.Delete(a.ID) })
	b, err := cats.Create(&models.Category{Name: "Second " + suffix()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cats.Delete(b.ID) })

	if err := cats.Assign(post.ID, a.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	if err := cats.Assign(post.ID, b.ID); err != nil {
		t.Fatal(err)
	}

	meta, err := NewContentStore(db).PostMeta(post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(meta.Categories, []string{b.Name}) {
		t.Errorf("got %v, want [%s]", meta.Categories, b.Name)
	}

	found, err := cats.FindBySlug(a.Slug)
	if err != nil || found == nil || found.Name != a.Name {
		t.Errorf("FindBySlug: got %+v, %v", found, err)
	}
}
