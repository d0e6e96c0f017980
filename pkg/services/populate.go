package services

import (
	"landing-cms/pkg/models"
)

// SectionView is a section with its references resolved.
type SectionView struct {
	models.SectionDocument
	Image         *models.MediaFile `json:"image,omitempty"`
	Testimonials  []TestimonialView `json:"testimonials,omitempty"`
	FeaturedPosts []models.Post     `json:"featuredPosts,omitempty"`
	SpotifyURLs   []SpotifyEmbed    `json:"spotifyUrls,omitempty"`
}

// TestimonialView is a testimonial row with its image resolved.
type TestimonialView struct {
	models.Testimonial
	Image *models.MediaFile `json:"image,omitempty"`
}

type SpotifyEmbed struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	EmbedURL string `json:"embedUrl,omitempty"`
}

// PopulateSection resolves media and post references. References that no
// longer resolve are dropped from the view.
func PopulateSection(doc models.SectionDocument) (SectionView, error) {
	view := SectionView{SectionDocument: doc}
	view.Image = resolveMedia(doc.Image)

	for _, t := range doc.Testimonials {
		view.Testimonials = append(view.Testimonials, TestimonialView{
			Testimonial: t,
			Image:       resolveMedia(t.Image),
		})
	}

	for _, id := range doc.FeaturedPosts {
		post, ok, err := FindPost(id)
		if err != nil {
			return SectionView{}, err
		}
		if ok {
			view.FeaturedPosts = append(view.FeaturedPosts, post)
		}
	}

	for _, s := range doc.SpotifyURLs {
		embed := SpotifyEmbed{ID: s.ID, URL: s.URL}
		if u, err := SpotifyEmbedURL(s.URL); err == nil {
			embed.EmbedURL = u
		}
		view.SpotifyURLs = append(view.SpotifyURLs, embed)
	}
	return view, nil
}

// resolveMedia returns nil for an empty or dangling reference.
func resolveMedia(name string) *models.MediaFile {
	if name == "" {
		return nil
	}
	media, err := GetMediaFile(name)
	if err != nil {
		return nil
	}
	return media
}

func PopulateSections(docs []models.SectionDocument) ([]SectionView, error) {
	views := make([]SectionView, 0, len(docs))
	for _, doc := range docs {
		view, err := PopulateSection(doc)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
