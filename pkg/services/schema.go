package services

import (
	"bytes"
	"fmt"

	"landing-cms/pkg/models"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LandingSectionsSlug is the collection name exposed by the API.
const LandingSectionsSlug = "landing-sections"

func typeIn(types ...models.SectionType) func(models.SectionType) bool {
	return func(t models.SectionType) bool {
		for _, v := range types {
			if v == t {
				return true
			}
		}
		return false
	}
}

func typeNotIn(types ...models.SectionType) func(models.SectionType) bool {
	in := typeIn(types...)
	return func(t models.SectionType) bool { return !in(t) }
}

// LandingSections declares the landing-sections collection.
func LandingSections() models.Collection {
	return models.Collection{
		Slug:   LandingSectionsSlug,
		Labels: &models.Labels{Singular: "Landing Section", Plural: "Landing Sections"},
		Admin:  models.CollectionAdmin{UseAsTitle: "title"},
		Access: models.AccessPolicy{
			Read: models.AllowAll,
		},
		Fields: []models.Field{
			{Name: "title", Type: models.FieldText, Required: true},
			{
				Name:     "type",
				Type:     models.FieldSelect,
				Required: true,
				Options: []models.Option{
					{Label: "Hero Section", Value: string(models.SectionHero)},
					{Label: "Featured Interviews", Value: string(models.SectionFeatured)},
					{Label: "About Section", Value: string(models.SectionAbout)},
					{Label: "Call to Action", Value: string(models.SectionCTA)},
					{Label: "Testimonials Section", Value: string(models.SectionTestimonials)},
					{Label: "Articles Section", Value: string(models.SectionArticles)},
					{Label: "Spotify Section", Value: string(models.SectionSpotify)},
				},
			},
			{
				Name:     "content",
				Type:     models.FieldRichText,
				Required: true,
				Condition: typeNotIn(
					models.SectionTestimonials,
					models.SectionFeatured,
					models.SectionArticles,
					models.SectionSpotify,
				),
			},
			{
				Name:       "image",
				Type:       models.FieldUpload,
				RelationTo: "media",
				Condition:  typeIn(models.SectionHero, models.SectionCTA, models.SectionAbout),
			},
			{
				Name:        "order",
				Type:        models.FieldNumber,
				Required:    true,
				Description: "Order of appearance on the landing page",
			},
			{
				Name:      "testimonials",
				Type:      models.FieldArray,
				Labels:    &models.Labels{Singular: "Testimonial", Plural: "Testimonials"},
				Condition: typeIn(models.SectionTestimonials),
				Fields: []models.Field{
					{Name: "quote", Type: models.FieldTextarea, Required: true, Description: "The testimonial text"},
					{Name: "name", Type: models.FieldText, Required: true, Description: "The name of the person giving the testimonial"},
					{Name: "title", Type: models.FieldText, Description: "The title or position of the person"},
					{Name: "initials", Type: models.FieldText, Required: true, MaxLength: 3, Description: "Initials to display if no image is available (2-3 characters)"},
					{Name: "image", Type: models.FieldUpload, RelationTo: "media", Description: "Profile image for the testimonial (optional)"},
				},
			},
			{
				Name:        "featuredPosts",
				Type:        models.FieldRelationship,
				RelationTo:  "posts",
				HasMany:     true,
				Condition:   typeIn(models.SectionFeatured),
				Description: "Select posts to feature in this section",
			},
			{
				Name:      "articles",
				Type:      models.FieldArray,
				Labels:    &models.Labels{Singular: "Article", Plural: "Articles"},
				Condition: typeIn(models.SectionArticles),
				Fields: []models.Field{
					{Name: "title", Type: models.FieldText, Required: true},
					{Name: "description", Type: models.FieldTextarea},
					{Name: "imageUrl", Type: models.FieldText, Description: "URL to the article image"},
					{Name: "slug", Type: models.FieldText, Required: true, Description: "URL slug for the article"},
					{Name: "category", Type: models.FieldText},
				},
			},
			{
				Name:      "spotifyUrls",
				Type:      models.FieldArray,
				Condition: typeIn(models.SectionSpotify),
				Fields: []models.Field{
					{Name: "url", Type: models.FieldText, Required: true, Description: "Spotify URL (will be converted to embed format)"},
				},
			},
		},
	}
}

// VisibleFields returns the top level fields an admin form renders for t,
// in declaration order.
func VisibleFields(t models.SectionType) []string {
	var names []string
	for _, f := range LandingSections().Fields {
		if f.Visible(t) {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldVisible reports whether the named top level field is shown for t.
// Unknown names are never visible.
func FieldVisible(name string, t models.SectionType) bool {
	for _, f := range LandingSections().Fields {
		if f.Name == name {
			return f.Visible(t)
		}
	}
	return false
}

// FormState splits the collection fields into visible and hidden for an
// in-progress record.
type FormState struct {
	Type    models.SectionType `json:"type"`
	Title   string             `json:"title"`
	Visible []string           `json:"visible"`
	Hidden  []string           `json:"hidden"`
}

func GetFormState(doc models.SectionDocument) FormState {
	state := FormState{Type: doc.Type, Title: doc.Title, Visible: []string{}, Hidden: []string{}}
	for _, f := range LandingSections().Fields {
		if f.Visible(doc.Type) {
			state.Visible = append(state.Visible, f.Name)
		} else {
			state.Hidden = append(state.Hidden, f.Name)
		}
	}
	return state
}

// ExportSchema renders the collection declaration with every condition
// flattened into the list of types it shows for.
func ExportSchema(format string) ([]byte, error) {
	col := LandingSections()
	flattenConditions(col.Fields)

	var buf bytes.Buffer
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(col); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(col); err != nil {
			return nil, err
		}
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(col); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

func flattenConditions(fields []models.Field) {
	for i := range fields {
		if fields[i].Condition != nil {
			for _, t := range models.SectionTypes {
				if fields[i].Condition(t) {
					fields[i].VisibleWhen = append(fields[i].VisibleWhen, t)
				}
			}
		}
		flattenConditions(fields[i].Fields)
	}
}
