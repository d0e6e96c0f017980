package models

import "time"

// SectionDocument is the flat shape of a landing section used on the wire
// and in front matter. Only the fields of the active type are meaningful;
// Normalized drops the rest.
type SectionDocument struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title" validate:"required"`
	Type          SectionType   `json:"type" validate:"required,oneof=hero featured about cta testimonials articles spotify"`
	Content       string        `json:"content,omitempty"`
	Image         string        `json:"image,omitempty"`
	Order         *int          `json:"order" validate:"required"`
	Testimonials  []Testimonial `json:"testimonials,omitempty" validate:"dive"`
	FeaturedPosts []string      `json:"featuredPosts,omitempty"`
	Articles      []Article     `json:"articles,omitempty" validate:"dive"`
	SpotifyURLs   []SpotifyURL  `json:"spotifyUrls,omitempty" validate:"dive"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}

// Payload builds the variant selected by Type. It returns nil for an
// unknown type.
func (d SectionDocument) Payload() Payload {
	switch d.Type {
	case SectionHero, SectionAbout, SectionCTA:
		return ContentBlock{Kind: d.Type, Content: d.Content, Image: d.Image}
	case SectionTestimonials:
		return TestimonialsBlock{Testimonials: d.Testimonials}
	case SectionFeatured:
		return FeaturedBlock{FeaturedPosts: d.FeaturedPosts}
	case SectionArticles:
		return ArticlesBlock{Articles: d.Articles}
	case SectionSpotify:
		return SpotifyBlock{SpotifyURLs: d.SpotifyURLs}
	}
	return nil
}

// Normalized returns a copy holding only the common fields and the fields
// of the active type.
func (d SectionDocument) Normalized() SectionDocument {
	out := SectionDocument{
		ID:        d.ID,
		Title:     d.Title,
		Type:      d.Type,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	out.setPayload(d.Payload())
	return out
}

func (d *SectionDocument) setPayload(p Payload) {
	switch v := p.(type) {
	case ContentBlock:
		d.Content = v.Content
		d.Image = v.Image
	case TestimonialsBlock:
		d.Testimonials = v.Testimonials
	case FeaturedBlock:
		d.FeaturedPosts = v.FeaturedPosts
	case ArticlesBlock:
		d.Articles = v.Articles
	case SpotifyBlock:
		d.SpotifyURLs = v.SpotifyURLs
	}
}

// Section converts a document into the tagged form. Documents without an
// order sort first.
func (d SectionDocument) Section() LandingSection {
	s := LandingSection{
		ID:      d.ID,
		Title:   d.Title,
		Payload: d.Payload(),
	}
	if d.Order != nil {
		s.Order = *d.Order
	}
	if d.CreatedAt != nil {
		s.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		s.UpdatedAt = *d.UpdatedAt
	}
	return s
}

// DocumentOf flattens a section back into its document form.
func DocumentOf(s LandingSection) SectionDocument {
	order := s.Order
	d := SectionDocument{
		ID:    s.ID,
		Title: s.Title,
		Type:  s.Type(),
		Order: &order,
	}
	if !s.CreatedAt.IsZero() {
		t := s.CreatedAt
		d.CreatedAt = &t
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		d.UpdatedAt = &t
	}
	d.setPayload(s.Payload)
	return d
}
