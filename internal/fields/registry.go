// Package fields indexes JIRA field definitions for lookup by ID or by
// display name.
package fields

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// Registry holds the field definitions of one JIRA instance, sorted by
// display name.
type Registry struct {
	fields []models.Field
	byID   map[string]models.Field
}

// NewRegistry indexes the given field definitions.
func NewRegistry(defs []models.Field) *Registry {
	r := &Registry{
		fields: append([]models.Field(nil), defs...),
		byID:   make(map[string]models.Field, len(defs)),
	}
	sort.Slice(r.fields, func(i, j int) bool {
		return strings.ToLower(r.fields[i].Name) < strings.ToLower(r.fields[j].Name)
	})
	for _, f := range r.fields {
		r.byID[f.ID] = f
	}
	return r
}

// All returns every field definition.
func (r *Registry) All() []models.Field {
	return append([]models.Field(nil), r.fields...)
}

// ByID looks a field up by its ID.
func (r *Registry) ByID(id string) (models.Field, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// ByName looks a field up by display name, first exactly and then
// case-insensitively.
func (r *Registry) ByName(name string) (models.Field, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range r.fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return models.Field{}, false
}

// Custom returns the custom fields.
func (r *Registry) Custom() []models.Field {
	return r.filter(true)
}

// Standard returns the built-in fields.
func (r *Registry) Standard() []models.Field {
	return r.filter(false)
}

func (r *Registry) filter(custom bool) []models.Field {
	var out []models.Field
	for _, f := range r.fields {
		if f.Custom == custom {
			out = append(out, f)
		}
	}
	return out
}

// Resolve maps a configured point-field value to a field ID. Values in
// field-ID form pass through even when the instance does not list them;
// anything else must match a known field's display name.
func (r *Registry) Resolve(value string) (string, error) {
	if f, ok := r.byID[value]; ok {
		return f.ID, nil
	}
	if IsFieldID(value) {
		return value, nil
	}
	if f, ok := r.ByName(value); ok {
		return f.ID, nil
	}
	return "", fmt.Errorf("%w: no field named %q", models.ErrConfiguration, value)
}

// IsFieldID reports whether the value is in custom-field ID form rather
// than a display name.
func IsFieldID(s string) bool {
	rest, ok := strings.CutPrefix(s, "customfield_")
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
