package models

// Collection declares a record type: its fields, admin hints and access rules.
type Collection struct {
	Slug   string          `yaml:"slug" toml:"slug" json:"slug"`
	Labels *Labels         `yaml:"labels,omitempty" toml:"labels,omitempty" json:"labels,omitempty"`
	Admin  CollectionAdmin `yaml:"admin" toml:"admin" json:"admin"`
	Access AccessPolicy    `yaml:"-" toml:"-" json:"-"`
	Fields []Field         `yaml:"fields" toml:"fields" json:"fields"`
}

type CollectionAdmin struct {
	UseAsTitle string `yaml:"use_as_title" toml:"use_as_title" json:"useAsTitle"`
}

type Labels struct {
	Singular string `yaml:"singular" toml:"singular" json:"singular"`
	Plural   string `yaml:"plural" toml:"plural" json:"plural"`
}

// Field types understood by the admin surface.
const (
	FieldText         = "text"
	FieldTextarea     = "textarea"
	FieldSelect       = "select"
	FieldRichText     = "richText"
	FieldUpload       = "upload"
	FieldNumber       = "number"
	FieldArray        = "array"
	FieldRelationship = "relationship"
)

type Field struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Type        string   `yaml:"type" toml:"type" json:"type"`
	Required    bool     `yaml:"required,omitempty" toml:"required,omitempty" json:"required,omitempty"`
	MaxLength   int      `yaml:"max_length,omitempty" toml:"max_length,omitempty" json:"maxLength,omitempty"`
	Options     []Option `yaml:"options,omitempty" toml:"options,omitempty" json:"options,omitempty"`
	RelationTo  string   `yaml:"relation_to,omitempty" toml:"relation_to,omitempty" json:"relationTo,omitempty"`
	HasMany     bool     `yaml:"has_many,omitempty" toml:"has_many,omitempty" json:"hasMany,omitempty"`
	Labels      *Labels  `yaml:"labels,omitempty" toml:"labels,omitempty" json:"labels,omitempty"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field  `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty"`

	// Condition hides the field in the admin form when it returns false.
	// A nil condition means always visible.
	Condition   func(SectionType) bool `yaml:"-" toml:"-" json:"-"`
	// VisibleWhen is Condition flattened for export.
	VisibleWhen []SectionType          `yaml:"visible_when,omitempty" toml:"visible_when,omitempty" json:"visibleWhen,omitempty"`
}

type Option struct {
	Label string `yaml:"label" toml:"label" json:"label"`
	Value string `yaml:"value" toml:"value" json:"value"`
}

// Visible evaluates the field condition for a section type.
func (f Field) Visible(t SectionType) bool {
	if f.Condition == nil {
		return true
	}
	return f.Condition(t)
}
