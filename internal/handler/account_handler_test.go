package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/nemosite/internal/db"
)

func TestUpdateAccountSettingsRequiresCurrentPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "maintainer@example.com", "s3cret")
	cookies := env.login(t, "maintainer@example.com", "s3cret")

	rr := postForm(t, env, cookies, "/account-settings", url.Values{
		"current_password": {"wrong"},
		"email":            {"maintainer@example.com"},
		"name":             {"Changed"},
	})

	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/account-settings" {
		t.Fatalf("expected settings redirect, got %d -> %q", rr.Code, rr.Header().Get("Location"))
	}

	var stored db.User
	if err := env.db.First(&stored, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Name == "Changed" {
		t.Fatal("expected rejected update to leave the profile untouched")
	}
}

func TestUpdateAccountSettingsAppliesChanges(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "maintainer@example.com", "s3cret")
	cookies := env.login(t, "maintainer@example.com", "s3cret")

	rr := postForm(t, env, cookies, "/account-settings", url.Values{
		"current_password": {"s3cret"},
		"email":            {"new@example.com"},
		"name":             {"Renamed"},
		"about_me":         {"short bio"},
	})

	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/account-settings" {
		t.Fatalf("expected settings redirect, got %d -> %q", rr.Code, rr.Header().Get("Location"))
	}

	var stored db.User
	if err := env.db.First(&stored, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Email != "new@example.com" || stored.Name != "Renamed" || stored.AboutMe != "short bio" {
		t.Fatalf("unexpected stored profile %+v", stored)
	}
}
