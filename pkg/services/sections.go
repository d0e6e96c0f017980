package services

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

var (
	ErrSectionNotFound = errors.New("landing section not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidDocument = errors.New("invalid section document")
)

const sectionExt = ".md"

// writeMutex serializes section writes so read-modify-write cycles of
// PatchSection do not interleave.
var writeMutex sync.Mutex

// SectionFilter narrows ListSections. Zero values match everything.
type SectionFilter struct {
	Type models.SectionType
}

func sectionsRoot() string {
	return filepath.Join(config.RepoPath, config.SectionsDir)
}

func sectionPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	p := SafeJoin(config.RepoPath, config.SectionsDir, id+sectionExt)
	if p == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return p, nil
}

// ListSections returns the stored sections ordered for rendering.
func ListSections(filter SectionFilter) ([]models.SectionDocument, error) {
	all, err := GetSectionsCache()
	if err != nil {
		return nil, err
	}
	out := make([]models.SectionDocument, 0, len(all))
	for _, doc := range all {
		if filter.Type != "" && doc.Type != filter.Type {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func GetSection(id string) (models.SectionDocument, error) {
	path, err := sectionPath(id)
	if err != nil {
		return models.SectionDocument{}, err
	}
	return readSectionFile(id, path)
}

// CreateSection validates doc and stores it under a new id.
func CreateSection(doc models.SectionDocument) (models.SectionDocument, error) {
	writeMutex.Lock()
	defer writeMutex.Unlock()

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = &now
	doc.UpdatedAt = &now

	prepared, err := prepareSection(doc)
	if err != nil {
		return models.SectionDocument{}, err
	}
	if err := writeSection(prepared, true); err != nil {
		return models.SectionDocument{}, err
	}
	slog.Info("landing section created", "id", prepared.ID, "type", prepared.Type)
	return prepared, nil
}

// UpdateSection replaces the section with doc, keeping its id and creation time.
func UpdateSection(id string, doc models.SectionDocument) (models.SectionDocument, error) {
	writeMutex.Lock()
	defer writeMutex.Unlock()

	existing, err := GetSection(id)
	if err != nil {
		return models.SectionDocument{}, err
	}
	return replaceSection(existing, doc)
}

// PatchSection overlays the supplied top level keys on the stored section.
// Changing the type drops the data of the previous variant.
func PatchSection(id string, patch map[string]interface{}) (models.SectionDocument, error) {
	writeMutex.Lock()
	defer writeMutex.Unlock()

	existing, err := GetSection(id)
	if err != nil {
		return models.SectionDocument{}, err
	}
	merged, err := documentToMap(existing)
	if err != nil {
		return models.SectionDocument{}, err
	}
	for k, v := range patch {
		merged[k] = v
	}
	doc, err := documentFromMap(merged)
	if err != nil {
		return models.SectionDocument{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return replaceSection(existing, doc)
}

func replaceSection(existing, doc models.SectionDocument) (models.SectionDocument, error) {
	now := time.Now().UTC()
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = &now

	prepared, err := prepareSection(doc)
	if err != nil {
		return models.SectionDocument{}, err
	}
	if err := writeSection(prepared, false); err != nil {
		return models.SectionDocument{}, err
	}
	slog.Info("landing section updated", "id", prepared.ID, "type", prepared.Type)
	return prepared, nil
}

// DeleteSection removes the section. Referenced media and posts are left alone.
func DeleteSection(id string) error {
	writeMutex.Lock()
	defer writeMutex.Unlock()

	path, err := sectionPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
		}
		return err
	}
	InvalidateCache()
	slog.Info("landing section deleted", "id", id)
	return nil
}

// prepareSection strips inactive variant data, fills row ids and validates.
func prepareSection(doc models.SectionDocument) (models.SectionDocument, error) {
	doc = doc.Normalized()
	doc.Content = strings.TrimSpace(doc.Content)
	assignRowIDs(&doc)

	if err := ValidateSection(doc); err != nil {
		return models.SectionDocument{}, err
	}
	if err := CheckReferences(doc); err != nil {
		return models.SectionDocument{}, err
	}
	return doc, nil
}

func assignRowIDs(doc *models.SectionDocument) {
	for i := range doc.Testimonials {
		if doc.Testimonials[i].ID == "" {
			doc.Testimonials[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Articles {
		if doc.Articles[i].ID == "" {
			doc.Articles[i].ID = uuid.NewString()
		}
	}
	for i := range doc.SpotifyURLs {
		if doc.SpotifyURLs[i].ID == "" {
			doc.SpotifyURLs[i].ID = uuid.NewString()
		}
	}
}

// CheckReferences verifies that media and post references resolve.
func CheckReferences(doc models.SectionDocument) error {
	var errs []FieldError
	if doc.Image != "" && !MediaExists(doc.Image) {
		errs = append(errs, FieldError{Path: "image", Rule: "reference", Message: "Media not found: " + doc.Image})
	}
	for i, t := range doc.Testimonials {
		if t.Image != "" && !MediaExists(t.Image) {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("testimonials.%d.image", i),
				Rule:    "reference",
				Message: "Media not found: " + t.Image,
			})
		}
	}
	for i, id := range doc.FeaturedPosts {
		_, ok, err := FindPost(id)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("featuredPosts.%d", i),
				Rule:    "reference",
				Message: "Post not found: " + id,
			})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func writeSection(doc models.SectionDocument, create bool) error {
	path, err := sectionPath(doc.ID)
	if err != nil {
		return err
	}
	content, err := renderSectionFile(doc, config.SectionFormat)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if create {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	InvalidateCache()
	return nil
}

func readSectionFile(id, path string) (models.SectionDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.SectionDocument{}, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
		}
		return models.SectionDocument{}, err
	}
	return parseSectionFile(id, content)
}

// renderSectionFile stores content as the body and every other field as
// front matter.
func renderSectionFile(doc models.SectionDocument, format string) ([]byte, error) {
	fm, err := documentToMap(doc)
	if err != nil {
		return nil, err
	}
	delete(fm, "id")
	delete(fm, "content")
	pruned, _ := pruneEmptyFields(fm).(map[string]interface{})
	return ConstructFileContent(pruned, doc.Content, format)
}

func parseSectionFile(id string, content []byte) (models.SectionDocument, error) {
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return models.SectionDocument{}, fmt.Errorf("parse section %s: %w", id, err)
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}
	fm["content"] = body
	doc, err := documentFromMap(fm)
	if err != nil {
		return models.SectionDocument{}, fmt.Errorf("decode section %s: %w", id, err)
	}
	doc.ID = id
	return doc.Normalized(), nil
}

func documentToMap(doc models.SectionDocument) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func documentFromMap(m map[string]interface{}) (models.SectionDocument, error) {
	var doc models.SectionDocument
	raw, err := json.Marshal(m)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}
