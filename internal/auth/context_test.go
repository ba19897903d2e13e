package auth

import (
	"context"
	"testing"
)

func TestWithUserAndFromContext(t *testing.T) {
	ctx := WithUser(context.Background(), UserContext{UserID: 1, Username: "Arena"})
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected UserContext in context")
	}
	if got.UserID != 1 {
		t.Errorf("UserID = %d, want 1", got.UserID)
	}
	if got.Username != "Arena" {
		t.Errorf("Username = %q, want %q", got.Username, "Arena")
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing UserContext")
	}
}

func TestUserID(t *testing.T) {
	ctx := WithUser(context.Background(), UserContext{UserID: 7})
	if UserID(ctx) != 7 {
		t.Errorf("UserID = %d, want 7", UserID(ctx))
	}
}

func TestUserIDMissing(t *testing.T) {
	if UserID(context.Background()) != 0 {
		t.Error("expected 0 for missing context")
	}
}

func TestWithUserFillsHolder(t *testing.T) {
	var holder UserContext
	ctx := WithHolder(context.Background(), &holder)
	WithUser(ctx, UserContext{UserID: 3, Username: "Arena"})
	if holder.UserID != 3 || holder.Username != "Arena" {
		t.Errorf("holder = %+v", holder)
	}
}
