package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSectionTypeValid(t *testing.T) {
	for _, st := range SectionTypes {
		assert.True(t, st.Valid(), st)
	}
	assert.False(t, SectionType("banner").Valid())
	assert.False(t, SectionType("").Valid())
}

func TestNormalizedDropsInactiveVariants(t *testing.T) {
	doc := SectionDocument{
		Title:         "Hero",
		Type:          SectionHero,
		Order:         intPtr(1),
		Content:       "Welcome",
		Image:         "hero.png",
		Testimonials:  []Testimonial{{Quote: "q", Name: "n", Initials: "AB"}},
		FeaturedPosts: []string{"posts/one"},
		Articles:      []Article{{Title: "a", Slug: "a"}},
		SpotifyURLs:   []SpotifyURL{{URL: "https://open.spotify.com/track/1"}},
	}

	got := doc.Normalized()
	assert.Equal(t, "Welcome", got.Content)
	assert.Equal(t, "hero.png", got.Image)
	assert.Empty(t, got.Testimonials)
	assert.Empty(t, got.FeaturedPosts)
	assert.Empty(t, got.Articles)
	assert.Empty(t, got.SpotifyURLs)
	assert.Equal(t, 1, *got.Order)
}

func TestNormalizedKeepsOnlyActiveList(t *testing.T) {
	doc := SectionDocument{
		Title:         "Voices",
		Type:          SectionTestimonials,
		Order:         intPtr(3),
		Content:       "stale",
		Image:         "stale.png",
		Testimonials:  []Testimonial{{Quote: "q", Name: "n", Initials: "AB"}},
		FeaturedPosts: []string{"posts/one"},
	}

	got := doc.Normalized()
	assert.Empty(t, got.Content)
	assert.Empty(t, got.Image)
	assert.Len(t, got.Testimonials, 1)
	assert.Empty(t, got.FeaturedPosts)
}

func TestNormalizedUnknownTypeKeepsCommonFields(t *testing.T) {
	doc := SectionDocument{Title: "x", Type: "banner", Content: "c", Order: intPtr(2)}
	got := doc.Normalized()
	assert.Equal(t, "x", got.Title)
	assert.Empty(t, got.Content)
	assert.Nil(t, doc.Payload())
}

func TestSectionRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	doc := SectionDocument{
		ID:          "abc",
		Title:       "Listen",
		Type:        SectionSpotify,
		Order:       intPtr(7),
		SpotifyURLs: []SpotifyURL{{ID: "r1", URL: "spotify:track:xyz"}},
		CreatedAt:   &created,
	}

	section := doc.Section()
	require.Equal(t, SectionSpotify, section.Type())
	block, ok := section.Payload.(SpotifyBlock)
	require.True(t, ok)
	assert.Equal(t, "spotify:track:xyz", block.SpotifyURLs[0].URL)
	assert.Equal(t, 7, section.Order)

	back := DocumentOf(section)
	assert.Equal(t, doc.ID, back.ID)
	assert.Equal(t, doc.SpotifyURLs, back.SpotifyURLs)
	assert.Equal(t, created, *back.CreatedAt)
	assert.Nil(t, back.UpdatedAt)
}

func TestContentBlockCarriesKind(t *testing.T) {
	for _, st := range []SectionType{SectionHero, SectionAbout, SectionCTA} {
		doc := SectionDocument{Type: st, Content: "c"}
		block, ok := doc.Payload().(ContentBlock)
		require.True(t, ok, st)
		assert.Equal(t, st, block.SectionType())
	}
}

func TestLandingSectionWithoutPayload(t *testing.T) {
	assert.Equal(t, SectionType(""), LandingSection{}.Type())
}
