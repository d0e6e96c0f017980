package models

import "time"

// SectionType selects which payload a landing section carries.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionFeatured     SectionType = "featured"
	SectionAbout        SectionType = "about"
	SectionCTA          SectionType = "cta"
	SectionTestimonials SectionType = "testimonials"
	SectionArticles     SectionType = "articles"
	SectionSpotify      SectionType = "spotify"
)

// SectionTypes lists every section type in admin option order.
var SectionTypes = []SectionType{
	SectionHero,
	SectionFeatured,
	SectionAbout,
	SectionCTA,
	SectionTestimonials,
	SectionArticles,
	SectionSpotify,
}

func (t SectionType) Valid() bool {
	for _, v := range SectionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// LandingSection is one block of the landing page. The variant specific
// data lives in Payload, so a section can never hold data for a type it
// does not have.
type LandingSection struct {
	ID        string
	Title     string
	Order     int
	Payload   Payload
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Type reports the discriminator of the section.
func (s LandingSection) Type() SectionType {
	if s.Payload == nil {
		return ""
	}
	return s.Payload.SectionType()
}

// Payload is implemented by every section variant.
type Payload interface {
	SectionType() SectionType
}

// ContentBlock is the payload of hero, about and cta sections.
type ContentBlock struct {
	Kind    SectionType
	Content string
	Image   string
}

func (b ContentBlock) SectionType() SectionType { return b.Kind }

type TestimonialsBlock struct {
	Testimonials []Testimonial
}

func (TestimonialsBlock) SectionType() SectionType { return SectionTestimonials }

// FeaturedBlock references posts by id.
type FeaturedBlock struct {
	FeaturedPosts []string
}

func (FeaturedBlock) SectionType() SectionType { return SectionFeatured }

type ArticlesBlock struct {
	Articles []Article
}

func (ArticlesBlock) SectionType() SectionType { return SectionArticles }

type SpotifyBlock struct {
	SpotifyURLs []SpotifyURL
}

func (SpotifyBlock) SectionType() SectionType { return SectionSpotify }

// Testimonial is a quote row owned by a testimonials section.
type Testimonial struct {
	ID       string `json:"id,omitempty"`
	Quote    string `json:"quote" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title,omitempty"`
	Initials string `json:"initials" validate:"required,max=3"`
	Image    string `json:"image,omitempty"`
}

// Article is a linked article row owned by an articles section.
type Article struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Slug        string `json:"slug" validate:"required"`
	Category    string `json:"category,omitempty"`
}

type SpotifyURL struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url" validate:"required"`
}
