package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrMediaNotFound    = errors.New("media not found")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrMediaTooLarge    = errors.New("media file too large")
)

// MediaRoot is the directory served under config.MediaPublicPath.
func MediaRoot() string {
	return filepath.Join(config.RepoPath, config.MediaFolder)
}

func mediaPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrMediaNotFound, name)
	}
	p := SafeJoin(config.RepoPath, config.MediaFolder, name)
	if p == "" {
		return "", fmt.Errorf("%w: %q", ErrMediaNotFound, name)
	}
	return p, nil
}

func mediaFile(name string, info os.FileInfo, mimeType string) models.MediaFile {
	usagePath := path.Join("/", config.MediaPublicPath, name)
	return models.MediaFile{
		ID:       name,
		Name:     name,
		Path:     usagePath,
		Size:     info.Size(),
		URL:      usagePath,
		MimeType: mimeType,
	}
}

func ListMediaFiles() ([]models.MediaFile, error) {
	entries, err := os.ReadDir(MediaRoot())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.MediaFile{}, nil
		}
		return nil, err
	}

	files := []models.MediaFile{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mt, _ := mimetype.DetectFile(filepath.Join(MediaRoot(), entry.Name()))
		files = append(files, mediaFile(entry.Name(), info, mimeString(mt)))
	}
	return files, nil
}

func GetMediaFile(name string) (*models.MediaFile, error) {
	p, err := mediaPath(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, name)
	}
	mt, _ := mimetype.DetectFile(p)
	f := mediaFile(name, info, mimeString(mt))
	return &f, nil
}

func MediaExists(name string) bool {
	_, err := GetMediaFile(name)
	return err == nil
}

// SaveMediaFile stores an uploaded multipart file.
func SaveMediaFile(header *multipart.FileHeader) (*models.MediaFile, error) {
	if header.Size > config.MaxMediaBytes {
		return nil, ErrMediaTooLarge
	}
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return SaveMedia(header.Filename, src)
}

// SaveMedia stores an image under a unique name derived from filename.
func SaveMedia(filename string, r io.Reader) (*models.MediaFile, error) {
	content, err := io.ReadAll(io.LimitReader(r, config.MaxMediaBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > config.MaxMediaBytes {
		return nil, ErrMediaTooLarge
	}
	mt := mimetype.Detect(content)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}

	filename = filepath.Base(filepath.ToSlash(filename))
	filename = strings.ReplaceAll(filename, " ", "_")
	ext := filepath.Ext(filename)
	name := strings.TrimPrefix(strings.TrimSuffix(filename, ext), ".")
	if name == "" {
		name = "upload"
	}
	if ext == "" || ext == "." {
		ext = mt.Extension()
	}
	filename = fmt.Sprintf("%s_%d%s", name, time.Now().UnixNano(), ext)

	p, err := mediaPath(filename)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(MediaRoot(), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p, content, 0644); err != nil {
		return nil, err
	}
	slog.Info("media saved", "name", filename, "mime", mt.String(), "size", len(content))
	return GetMediaFile(filename)
}

// DeleteMediaFile removes a media file. Sections that reference it keep the
// dangling name; population skips it.
func DeleteMediaFile(name string) error {
	p, err := mediaPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMediaNotFound, name)
		}
		return err
	}
	slog.Info("media deleted", "name", name)
	return nil
}

func mimeString(mt *mimetype.MIME) string {
	if mt == nil {
		return ""
	}
	return mt.String()
}
