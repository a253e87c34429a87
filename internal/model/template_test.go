package model

import (
	"testing"
)

func sampleRequest() RoomRequest {
	return RoomRequest{
		TotalArea:     120,
		RoomCounts:    map[RoomType]int{Bedroom: 2, Bathroom: 1, Kitchen: 1},
		RoomSizeHints: map[RoomType]float64{Kitchen: 10},
	}
}

func TestNewRequestTemplate(t *testing.T) {
	tmpl := NewRequestTemplate("Duplex", "Two bedroom unit", sampleRequest(), DefaultSettings())

	if tmpl.Name != "Duplex" {
		t.Errorf("expected name 'Duplex', got %q", tmpl.Name)
	}
	if tmpl.Description != "Two bedroom unit" {
		t.Errorf("expected description 'Two bedroom unit', got %q", tmpl.Description)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if tmpl.Request.RoomCounts[Bedroom] != 2 {
		t.Errorf("expected 2 bedrooms, got %d", tmpl.Request.RoomCounts[Bedroom])
	}
}

func TestNewRequestTemplateCopiesMaps(t *testing.T) {
	req := sampleRequest()
	tmpl := NewRequestTemplate("T", "", req, DefaultSettings())

	req.RoomCounts[Bedroom] = 9
	req.RoomSizeHints[Kitchen] = 40

	if tmpl.Request.RoomCounts[Bedroom] != 2 {
		t.Errorf("template counts changed with the source request: %d", tmpl.Request.RoomCounts[Bedroom])
	}
	if tmpl.Request.RoomSizeHints[Kitchen] != 10 {
		t.Errorf("template hints changed with the source request: %f", tmpl.Request.RoomSizeHints[Kitchen])
	}
}

func TestRequestTemplate_ToProject(t *testing.T) {
	settings := DefaultSettings()
	settings.GridSize = 0.25

	tmpl := NewRequestTemplate("Test", "desc", sampleRequest(), settings)
	proj := tmpl.ToProject("My Project")

	if proj.Name != "My Project" {
		t.Errorf("expected project name 'My Project', got %q", proj.Name)
	}
	if proj.Request.TotalArea != 120 {
		t.Errorf("expected total area 120, got %f", proj.Request.TotalArea)
	}
	if proj.Settings.GridSize != 0.25 {
		t.Errorf("expected grid size 0.25, got %.2f", proj.Settings.GridSize)
	}
	if proj.Result != nil {
		t.Error("project from template should have no result")
	}
}

func TestBuiltinTemplatesAreValid(t *testing.T) {
	for _, tmpl := range BuiltinTemplates() {
		if err := tmpl.Request.Validate(tmpl.Settings); err != nil {
			t.Errorf("builtin template %q is invalid: %v", tmpl.Name, err)
		}
		if tmpl.Request.RequestedRooms() == 0 {
			t.Errorf("builtin template %q requests no rooms", tmpl.Name)
		}
	}
}

func TestTemplateStore_AddRemoveFind(t *testing.T) {
	store := NewTemplateStore()

	tmpl1 := NewRequestTemplate("T1", "", RoomRequest{}, DefaultSettings())
	tmpl2 := NewRequestTemplate("T2", "", RoomRequest{}, DefaultSettings())

	store.Add(tmpl1)
	store.Add(tmpl2)

	if len(store.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(store.Templates))
	}
	if found := store.FindByID(tmpl1.ID); found == nil || found.Name != "T1" {
		t.Error("expected to find T1 by ID")
	}
	if found := store.FindByName("T2"); found == nil || found.ID != tmpl2.ID {
		t.Error("expected to find T2 by name")
	}
	if store.FindByName("missing") != nil {
		t.Error("expected nil for unknown name")
	}

	names := store.Names()
	if len(names) != 2 || names[0] != "T1" || names[1] != "T2" {
		t.Errorf("unexpected names: %v", names)
	}

	if !store.Remove(tmpl1.ID) {
		t.Error("expected Remove to return true")
	}
	if store.Remove(tmpl1.ID) {
		t.Error("expected second Remove to return false")
	}
	if len(store.Templates) != 1 {
		t.Errorf("expected 1 template after removal, got %d", len(store.Templates))
	}
}
