package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	tl "todo_list"
	"todo_list/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTodoService_Create(t *testing.T) {
	todos := &mockTodoRepo{}
	feed := &recordingFeed{}
	svc := NewTodoService(provider(&mockUserRepo{}, todos), feed)

	got, err := svc.Create(context.Background(), 3, TodoInput{Title: "  buy milk ", Description: strPtr("  ")})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID == 0 || got.Title != "buy milk" || got.UserID != 3 {
		t.Fatalf("unexpected todo: %+v", got)
	}
	if got.Description != nil {
		t.Fatalf("blank description should be stored as NULL, got %q", *got.Description)
	}
	if len(feed.published) != 1 || feed.published[0] != 3 {
		t.Fatalf("expected one publish for user 3, got %v", feed.published)
	}
}

func TestTodoService_Create_Validation(t *testing.T) {
	cases := []struct {
		name  string
		in    TodoInput
		field string
	}{
		{"missing title", TodoInput{}, "title"},
		{"blank title", TodoInput{Title: "   "}, "title"},
		{"long title", TodoInput{Title: strings.Repeat("x", maxTitleLen+1)}, "title"},
		{"long description", TodoInput{Title: "ok", Description: strPtr(strings.Repeat("d", maxDescriptionLen+1))}, "description"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			todos := &mockTodoRepo{}
			_, err := NewTodoService(provider(&mockUserRepo{}, todos), nil).Create(context.Background(), 1, tc.in)
			var ve *tl.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected validation error on %q, got %v", tc.field, err)
			}
			if len(todos.todos) != 0 {
				t.Fatalf("nothing should be stored, got %d", len(todos.todos))
			}
		})
	}
}

func TestTodoService_Create_StoreErrorIsPropagated(t *testing.T) {
	fk := &tl.PersistenceError{Kind: tl.KindForeignKey, Op: "commit", Err: errors.New("FOREIGN KEY constraint failed")}
	feed := &recordingFeed{}
	svc := NewTodoService(provider(&mockUserRepo{}, &mockTodoRepo{addErr: fk}), feed)

	_, err := svc.Create(context.Background(), 99, TodoInput{Title: "orphan"})
	if !tl.IsPersistence(err, tl.KindForeignKey) {
		t.Fatalf("expected foreign key persistence error, got %v", err)
	}
	if len(feed.published) != 0 {
		t.Fatalf("failed create must not publish, got %v", feed.published)
	}
}

func TestTodoService_OwnerScoping(t *testing.T) {
	todos := &mockTodoRepo{todos: []models.Todo{
		{ID: 1, Title: "alice 1", UserID: 1},
		{ID: 2, Title: "bob 1", UserID: 2},
		{ID: 3, Title: "alice 2", UserID: 1},
	}}
	feed := &recordingFeed{}
	svc := NewTodoService(provider(&mockUserRepo{}, todos), feed)
	ctx := context.Background()

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].Title != "alice 1" || list[1].Title != "alice 2" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if _, err := svc.Get(ctx, 1, 2); !errors.Is(err, tl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's todo, got %v", err)
	}
	if _, err := svc.Get(ctx, 1, 42); !errors.Is(err, tl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing todo, got %v", err)
	}
	got, err := svc.Get(ctx, 2, 2)
	if err != nil || got.Title != "bob 1" {
		t.Fatalf("Get(2,2) = %+v, %v", got, err)
	}

	if err := svc.Delete(ctx, 1, 2); !errors.Is(err, tl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting another user's todo, got %v", err)
	}
	if err := svc.Delete(ctx, 1, 3); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(todos.removed) != 1 || todos.removed[0] != 3 {
		t.Fatalf("expected todo 3 removed, got %v", todos.removed)
	}
	if len(feed.published) != 1 || feed.published[0] != 1 {
		t.Fatalf("expected one publish for user 1, got %v", feed.published)
	}
}

func TestTodoService_Get_RepoError(t *testing.T) {
	svc := NewTodoService(provider(&mockUserRepo{}, &mockTodoRepo{getErr: errors.New("db down")}), nil)
	_, err := svc.Get(context.Background(), 1, 1)
	if err == nil || errors.Is(err, tl.ErrNotFound) {
		t.Fatalf("expected store error, got %v", err)
	}
}
