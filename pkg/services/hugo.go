package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"landing-cms/pkg/config"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// RenderLandingData renders the ordered, populated sections as the yaml
// document Hugo templates read from the data folder.
func RenderLandingData() ([]byte, error) {
	docs, err := ListSections(SectionFilter{})
	if err != nil {
		return nil, err
	}
	views, err := PopulateSections(docs)
	if err != nil {
		return nil, err
	}

	// Round trip through json so yaml keys match the API field names.
	raw, err := json.Marshal(views)
	if err != nil {
		return nil, err
	}
	var sections []interface{}
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []interface{}{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]interface{}{"sections": sections}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportLandingData writes the landing data file into the site repository.
func ExportLandingData() (string, error) {
	content, err := RenderLandingData()
	if err != nil {
		return "", err
	}
	target := filepath.Join(config.RepoPath, config.LandingData)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return "", err
	}
	slog.Info("landing data exported", "path", target)
	return target, nil
}

// BuildSite exports the landing data and runs hugo into the preview folder.
func BuildSite() (string, error) {
	target, err := ExportLandingData()
	if err != nil {
		return "", fmt.Errorf("export landing data: %w", err)
	}
	args, err := hugoBuildArgs()
	if err != nil {
		return "", err
	}
	output, err := exec.Command("hugo", args...).CombinedOutput()
	return fmt.Sprintf("exported %s\n%s", target, output), err
}

// hugoBuildArgs renders into config.PublicPath, the folder served under
// config.PreviewURL. Hugo resolves a relative destination against the
// source, so the path is made absolute first.
func hugoBuildArgs() ([]string, error) {
	destination, err := filepath.Abs(config.PublicPath)
	if err != nil {
		return nil, err
	}
	return []string{
		"--source", config.RepoPath,
		"--destination", destination,
		"--baseURL", config.GetAppURL()+config.PreviewURL,
		"--cleanDestinationDir",
		"-D",
	}, nil
}
