package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store,
// ~/.planforge/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSONFile(path, store)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.RequestTemplate{}
	}
	return store, nil
}

// LoadTemplatesWithBuiltins loads the store at path and appends the built-in
// presets whose names the user has not reused.
func LoadTemplatesWithBuiltins(path string) (model.TemplateStore, error) {
	store, err := LoadTemplates(path)
	if err != nil {
		return store, err
	}
	for _, b := range model.BuiltinTemplates() {
		if store.FindByName(b.Name) == nil {
			store.Add(b)
		}
	}
	return store, nil
}
