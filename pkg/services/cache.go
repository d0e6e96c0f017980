package services

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"
)

var (
	sectionCache   []models.SectionDocument
	postCache      []models.Post
	cacheMutex     sync.Mutex
	sectionsLoaded bool
	postsLoaded    bool
)

// GetSectionsCache returns every stored section sorted by order, then title.
func GetSectionsCache() ([]models.SectionDocument, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if sectionsLoaded {
		return slices.Clone(sectionCache), nil
	}

	entries, err := os.ReadDir(sectionsRoot())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var sections []models.SectionDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sectionExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), sectionExt)
		doc, err := readSectionFile(id, filepath.Join(sectionsRoot(), entry.Name()))
		if err != nil {
			slog.Warn("skipping unreadable landing section", "id", id, "err", err)
			continue
		}
		sections = append(sections, doc)
	}
	SortSections(sections)

	sectionCache = sections
	sectionsLoaded = true
	return slices.Clone(sectionCache), nil
}

// SortSections orders sections for rendering. Order values may repeat.
func SortSections(sections []models.SectionDocument) {
	slices.SortStableFunc(sections, func(a, b models.SectionDocument) int {
		return cmp.Or(
			cmp.Compare(orderOf(a), orderOf(b)),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

func orderOf(doc models.SectionDocument) int {
	if doc.Order == nil {
		return 0
	}
	return *doc.Order
}

// GetPostsCache lists the posts that featured sections may reference.
func GetPostsCache() ([]models.Post, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if postsLoaded {
		return postCache, nil
	}

	var posts []models.Post
	postsDir := filepath.Join(config.RepoPath, config.PostsDir)

	dirtyFiles, _ := getGitDirtyFiles(config.RepoPath)

	err := filepath.WalkDir(postsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		relPath, _ := filepath.Rel(postsDir, path)
		relPath = filepath.ToSlash(relPath)

		repoRelPath, _ := filepath.Rel(config.RepoPath, path)
		repoRelPath = filepath.ToSlash(repoRelPath)

		id := strings.TrimSuffix(relPath, ".md")
		post := models.Post{
			ID:      id,
			Path:    repoRelPath,
			Title:   id, // Default to path
			Slug:    filepath.Base(id),
			IsDirty: dirtyFiles[repoRelPath],
		}

		if content, err := os.ReadFile(path); err == nil {
			if fm, _, _, err := ParseFrontMatter(content); err == nil {
				if t, ok := fm["title"].(string); ok && t != "" {
					post.Title = t
				}
				if s, ok := fm["slug"].(string); ok && s != "" {
					post.Slug = s
				}
				if date, ok := fm["date"]; ok && date != nil {
					post.Date = strings.TrimSpace(fmt.Sprint(date))
				}
			}
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	postCache = posts
	postsLoaded = true
	return postCache, nil
}

// FindPost looks a post up by id.
func FindPost(id string) (models.Post, bool, error) {
	posts, err := GetPostsCache()
	if err != nil {
		return models.Post{}, false, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Post{}, false, nil
}

func getGitDirtyFiles(dir string) (map[string]bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	dirty := make(map[string]bool)
	lines := strings.Split(string(out), "\n")
	for _, line := range lines {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		path = strings.Trim(path, "\"")
		dirty[path] = true
	}
	return dirty, nil
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	sectionsLoaded = false
	postsLoaded = false
	sectionCache = nil
	postCache = nil
}
