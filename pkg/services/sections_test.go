package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetSection(t *testing.T) {
	root := setupRepo(t)

	created, err := CreateSection(heroDoc("Welcome", 1))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	raw, err := os.ReadFile(filepath.Join(root, config.SectionsDir, created.ID+".md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "---\n"))
	assert.Contains(t, string(raw), "\nWelcome to the show\n")
	assert.NotContains(t, string(raw), "content:")

	got, err := GetSection(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", got.Title)
	assert.Equal(t, models.SectionHero, got.Type)
	assert.Equal(t, "Welcome to the show", got.Content)
	assert.Equal(t, 1, *got.Order)
	assert.True(t, created.CreatedAt.Equal(*got.CreatedAt))
}

func TestCreateSectionIgnoresClientID(t *testing.T) {
	setupRepo(t)
	doc := heroDoc("Welcome", 1)
	doc.ID = "../../etc/passwd"

	created, err := CreateSection(doc)
	require.NoError(t, err)
	assert.NotEqual(t, doc.ID, created.ID)
}

func TestCreateSectionStripsInactiveVariantData(t *testing.T) {
	setupRepo(t)
	doc := heroDoc("Welcome", 1)
	doc.Testimonials = []models.Testimonial{{Quote: "smuggled", Name: "x", Initials: "TOO_LONG"}}
	doc.FeaturedPosts = []string{"posts/missing"}
	doc.SpotifyURLs = []models.SpotifyURL{{}}

	created, err := CreateSection(doc)
	require.NoError(t, err)
	assert.Empty(t, created.Testimonials)
	assert.Empty(t, created.FeaturedPosts)
	assert.Empty(t, created.SpotifyURLs)

	got, err := GetSection(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Testimonials)
}

func TestCreateSectionValidation(t *testing.T) {
	root := setupRepo(t)

	_, err := CreateSection(testimonialsDoc("ABCD"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "testimonials.0.initials", verr.Errors[0].Path)

	_, statErr := os.Stat(filepath.Join(root, config.SectionsDir))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "nothing should be written")
}

func TestCreateSectionAssignsRowIDs(t *testing.T) {
	setupRepo(t)
	doc := testimonialsDoc("AB")
	doc.Testimonials = append(doc.Testimonials, models.Testimonial{ID: "keep", Quote: "q", Name: "n", Initials: "N"})

	created, err := CreateSection(doc)
	require.NoError(t, err)
	require.Len(t, created.Testimonials, 2)
	assert.NotEmpty(t, created.Testimonials[0].ID)
	assert.Equal(t, "keep", created.Testimonials[1].ID)

	got, err := GetSection(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Testimonials, got.Testimonials)
}

func TestListSectionsOrdersAndFilters(t *testing.T) {
	setupRepo(t)

	_, err := CreateSection(heroDoc("Second", 2))
	require.NoError(t, err)
	_, err = CreateSection(heroDoc("First", 1))
	require.NoError(t, err)
	_, err = CreateSection(heroDoc("Also second", 2))
	require.NoError(t, err)
	_, err = CreateSection(testimonialsDoc("AB"))
	require.NoError(t, err)

	all, err := ListSections(SectionFilter{})
	require.NoError(t, err)
	titles := make([]string, len(all))
	for i, s := range all {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"First", "Also second", "Second", "What people say"}, titles)

	onlyTestimonials, err := ListSections(SectionFilter{Type: models.SectionTestimonials})
	require.NoError(t, err)
	require.Len(t, onlyTestimonials, 1)
	assert.Equal(t, models.SectionTestimonials, onlyTestimonials[0].Type)
}

func TestListSectionsEmptyRepo(t *testing.T) {
	setupRepo(t)
	docs, err := ListSections(SectionFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestListSectionsSkipsBrokenFiles(t *testing.T) {
	root := setupRepo(t)
	writeRepoFile(t, root, filepath.Join(config.SectionsDir, "broken.md"), "no front matter")
	writeRepoFile(t, root, filepath.Join(config.SectionsDir, "hand-written.md"),
		"---\ntitle: Hand written\ntype: cta\norder: 9\n---\nJoin us\n")

	docs, err := ListSections(SectionFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "hand-written", docs[0].ID)
	assert.Equal(t, "Join us", docs[0].Content)
}

func TestUpdateSectionKeepsIdentity(t *testing.T) {
	setupRepo(t)
	created, err := CreateSection(heroDoc("Welcome", 1))
	require.NoError(t, err)

	replacement := models.SectionDocument{
		Title:         "Featured",
		Type:          models.SectionFeatured,
		Order:         intPtr(3),
		Content:       "stale",
		FeaturedPosts: nil,
	}
	updated, err := UpdateSection(created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(*updated.CreatedAt))
	assert.Empty(t, updated.Content)

	got, err := GetSection(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SectionFeatured, got.Type)
	assert.Empty(t, got.Content)
}

func TestPatchSectionChangesTypeAndDropsOldVariant(t *testing.T) {
	setupRepo(t)
	created, err := CreateSection(testimonialsDoc("AB"))
	require.NoError(t, err)

	patched, err := PatchSection(created.ID, map[string]interface{}{
		"type":    "about",
		"content": "About us",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SectionAbout, patched.Type)
	assert.Equal(t, "What people say", patched.Title)
	assert.Equal(t, "About us", patched.Content)
	assert.Empty(t, patched.Testimonials)

	_, err = PatchSection(created.ID, map[string]interface{}{"order": nil})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "order", verr.Errors[0].Path)
}

func TestSectionNotFound(t *testing.T) {
	setupRepo(t)

	_, err := GetSection("does-not-exist")
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = UpdateSection("does-not-exist", heroDoc("x", 1))
	assert.ErrorIs(t, err, ErrSectionNotFound)

	assert.ErrorIs(t, DeleteSection("does-not-exist"), ErrSectionNotFound)
}

func TestSectionInvalidID(t *testing.T) {
	setupRepo(t)
	for _, id := range []string{"", "../x", "a/b", ".hidden"} {
		_, err := GetSection(id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestDeleteSection(t *testing.T) {
	setupRepo(t)
	created, err := CreateSection(heroDoc("Welcome", 1))
	require.NoError(t, err)

	require.NoError(t, DeleteSection(created.ID))
	_, err = GetSection(created.ID)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	docs, err := ListSections(SectionFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSectionFormats(t *testing.T) {
	for _, format := range []string{"toml", "json"} {
		t.Run(format, func(t *testing.T) {
			root := setupRepo(t)
			config.SectionFormat = format

			created, err := CreateSection(testimonialsDoc("AB"))
			require.NoError(t, err)

			raw, err := os.ReadFile(filepath.Join(root, config.SectionsDir, created.ID+".md"))
			require.NoError(t, err)
			_, _, detected, err := ParseFrontMatter(raw)
			require.NoError(t, err)
			assert.Equal(t, format, detected)

			got, err := GetSection(created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Testimonials, got.Testimonials)
			assert.Equal(t, 4, *got.Order)
		})
	}
}

func TestReferencesMustResolve(t *testing.T) {
	root := setupRepo(t)
	writeRepoFile(t, root, filepath.Join(config.PostsDir, "interview-one.md"), "---\ntitle: Interview One\n---\nbody\n")

	featured := models.SectionDocument{
		Title:         "Featured",
		Type:          models.SectionFeatured,
		Order:         intPtr(2),
		FeaturedPosts: []string{"interview-one", "missing"},
	}
	_, err := CreateSection(featured)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{{Path: "featuredPosts.1", Rule: "reference", Message: "Post not found: missing"}}, verr.Errors)

	featured.FeaturedPosts = []string{"interview-one"}
	_, err = CreateSection(featured)
	require.NoError(t, err)

	hero := heroDoc("Hero", 1)
	hero.Image = "nope.png"
	_, err = CreateSection(hero)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "image", verr.Errors[0].Path)
}

func TestDeletingReferencedMediaKeepsSection(t *testing.T) {
	setupRepo(t)
	media, err := SaveMedia("hero.png", strings.NewReader(string(pngHeader)))
	require.NoError(t, err)

	hero := heroDoc("Hero", 1)
	hero.Image = media.ID
	created, err := CreateSection(hero)
	require.NoError(t, err)

	require.NoError(t, DeleteMediaFile(media.ID))

	got, err := GetSection(created.ID)
	require.NoError(t, err)
	assert.Equal(t, media.ID, got.Image)

	view, err := PopulateSection(got)
	require.NoError(t, err)
	assert.Nil(t, view.Image)
}

func TestPatchSectionRejectsWrongFieldTypes(t *testing.T) {
	setupRepo(t)
	created, err := CreateSection(heroDoc("Welcome", 1))
	require.NoError(t, err)

	for _, patch := range []map[string]interface{}{
		{"order": "first"},
		{"type": "testimonials", "testimonials": "x"},
		{"type": 123},
		{"createdAt": "yesterday"},
	} {
		_, err := PatchSection(created.ID, patch)
		assert.ErrorIs(t, err, ErrInvalidDocument, "%v", patch)
	}

	got, err := GetSection(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", got.Title)
	assert.Equal(t, 1, *got.Order)
}
