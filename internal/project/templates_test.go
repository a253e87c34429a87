package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	req := model.RoomRequest{
		TotalArea:     140,
		RoomCounts:    map[model.RoomType]int{model.Bedroom: 2, model.Kitchen: 1},
		RoomSizeHints: map[model.RoomType]float64{model.Bedroom: 14},
	}
	store.Add(model.NewRequestTemplate("Townhouse", "Two beds", req, model.DefaultSettings()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	got := loaded.Templates[0]
	if got.Name != "Townhouse" {
		t.Errorf("expected 'Townhouse', got %q", got.Name)
	}
	if got.Request.RoomCounts[model.Bedroom] != 2 {
		t.Errorf("expected 2 bedrooms, got %d", got.Request.RoomCounts[model.Bedroom])
	}
	if got.Request.RoomSizeHints[model.Bedroom] != 14 {
		t.Errorf("expected bedroom size hint 14, got %v", got.Request.RoomSizeHints[model.Bedroom])
	}
	if got.Settings.GridSize != model.DefaultSettings().GridSize {
		t.Errorf("settings were not preserved")
	}
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestLoadTemplatesNullList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte(`{"templates":null}`), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if store.Templates == nil {
		t.Error("Templates should not be nil")
	}
}

func TestLoadTemplatesWithBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	// A user template shadowing a preset by name
	store.Add(model.NewRequestTemplate("Studio", "my studio", model.RoomRequest{
		TotalArea:  55,
		RoomCounts: map[model.RoomType]int{model.Bedroom: 1},
	}, model.DefaultSettings()))
	if err := SaveTemplates(path, store); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadTemplatesWithBuiltins(path)
	if err != nil {
		t.Fatalf("LoadTemplatesWithBuiltins error: %v", err)
	}
	builtins := model.BuiltinTemplates()
	if len(loaded.Templates) != len(builtins) {
		t.Fatalf("expected %d templates, got %d", len(builtins), len(loaded.Templates))
	}
	if loaded.FindByName("Studio").Request.TotalArea != 55 {
		t.Error("user template should shadow the builtin with the same name")
	}
}
