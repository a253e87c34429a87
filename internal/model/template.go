package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestTemplate is a reusable room program: a request plus the settings it was tuned with.
type RequestTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Request     RoomRequest `json:"request"`
	Settings    Settings    `json:"settings"`
}

// NewRequestTemplate creates a template from the given request and settings.
// Maps are copied so later edits to the caller's request do not leak in.
func NewRequestTemplate(name, description string, req RoomRequest, settings Settings) RequestTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return RequestTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Request:     copyRequest(req),
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template. Results are never carried over.
func (t RequestTemplate) ToProject(projectName string) Project {
	return Project{
		Name:     projectName,
		Request:  copyRequest(t.Request),
		Settings: t.Settings,
	}
}

// BuiltinTemplates returns the preset room programs shipped with the tool.
func BuiltinTemplates() []RequestTemplate {
	s := DefaultSettings()
	presets := []struct {
		name, desc string
		area       float64
		counts     map[RoomType]int
	}{
		{"Studio", "Single bedroom with bath and kitchen", 60,
			map[RoomType]int{Bedroom: 1, Bathroom: 1, Kitchen: 1}},
		{"Family Home", "Three bedrooms, two baths, open living and dining", 160,
			map[RoomType]int{Bedroom: 3, Bathroom: 2, Kitchen: 1, LivingRoom: 1, DiningRoom: 1}},
		{"Cottage", "Two bedrooms with a living room", 90,
			map[RoomType]int{Bedroom: 2, Bathroom: 1, Kitchen: 1, LivingRoom: 1}},
	}
	out := make([]RequestTemplate, len(presets))
	for i, p := range presets {
		out[i] = RequestTemplate{
			ID:          "builtin-" + string(rune('a'+i)),
			Name:        p.name,
			Description: p.desc,
			Request:     RoomRequest{TotalArea: p.area, RoomCounts: p.counts},
			Settings:    s,
		}
	}
	return out
}

// TemplateStore holds a collection of request templates.
type TemplateStore struct {
	Templates []RequestTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []RequestTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t RequestTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *RequestTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *RequestTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyRequest(req RoomRequest) RoomRequest {
	cp := RoomRequest{TotalArea: req.TotalArea, RoomCounts: make(map[RoomType]int, len(req.RoomCounts))}
	for k, v := range req.RoomCounts {
		cp.RoomCounts[k] = v
	}
	if len(req.RoomSizeHints) > 0 {
		cp.RoomSizeHints = make(map[RoomType]float64, len(req.RoomSizeHints))
		for k, v := range req.RoomSizeHints {
			cp.RoomSizeHints[k] = v
		}
	}
	return cp
}
