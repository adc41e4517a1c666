package model_test

import (
	"testing"

	"content-review-tutor/internal/model"
)

func TestNewDocumentUnit(t *testing.T) {
	u := model.NewDocumentUnit(model.DocumentKindImage, 1, "Paris is the capital of France.")

	if u.Role != model.RoleUser {
		t.Errorf("expected user role, got %s", u.Role)
	}
	if u.Label != "Image 1" {
		t.Errorf("expected label 'Image 1', got %q", u.Label)
	}
	want := "<strong>Content from Image 1:</strong><br><p>Paris is the capital of France.</p>"
	if u.Content != want {
		t.Errorf("unexpected content:\n got: %s\nwant: %s", u.Content, want)
	}

	empty := model.NewDocumentUnit(model.DocumentKindSlide, 2, "")
	if empty.Content != "<strong>Content from Slide 2:</strong><br><p></p>" {
		t.Errorf("unexpected empty slide content: %s", empty.Content)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []model.Role{model.RoleSystem, model.RoleUser, model.RoleAssistant} {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if model.Role("tool").Valid() {
		t.Errorf("expected tool to be invalid")
	}
}

func TestSessionClone(t *testing.T) {
	s := model.Session{Key: "k", Messages: []model.Message{{Role: model.RoleUser, Content: "a"}}}
	cp := s.Clone()
	cp.Messages[0].Content = "changed"
	if s.Messages[0].Content != "a" {
		t.Errorf("clone aliased the original messages")
	}
}
