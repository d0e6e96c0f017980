package services

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"
)

// ExecuteGitWithToken runs git in dir, swapping the remote name in args for
// an authenticated URL. The token is masked in the returned log.
func ExecuteGitWithToken(dir, token string, args ...string) (string, error) {
	cmdGetURL := exec.Command("git", "remote", "get-url", config.GitRemote)
	cmdGetURL.Dir = dir
	outURL, err := cmdGetURL.Output()
	if err != nil {
		return "Failed to get remote url", err
	}
	remoteURL := strings.TrimSpace(string(outURL))
	u, err := url.Parse(remoteURL)
	if err != nil {
		return "Invalid remote url", err
	}
	u.User = url.UserPassword("oauth2", token)
	authenticatedURL := u.String()
	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == config.GitRemote {
			newArgs[i] = authenticatedURL
		}
	}
	cmd := exec.Command("git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	return maskToken(string(output), token, authenticatedURL, remoteURL), err
}

func maskToken(log, token, authenticatedURL, remoteURL string) string {
	safeLog := strings.ReplaceAll(log, authenticatedURL, remoteURL)
	if token != "" {
		safeLog = strings.ReplaceAll(safeLog, token, "***")
	}
	return safeLog
}

func SyncRepo(token string) (string, error) {
	log, err := ExecuteGitWithToken(config.RepoPath, token, "pull", config.GitRemote, config.GitBranch)
	if err == nil {
		InvalidateCache()
	}
	return log, err
}

// PublishRepo commits landing sections, media and the exported data file,
// then pushes.
func PublishRepo(token string) (string, error) {
	if _, err := ExportLandingData(); err != nil {
		return "Failed to export landing data", err
	}
	addArgs := []string{"add", "--"}
	for _, p := range []string{config.SectionsDir, config.MediaFolder, config.LandingData} {
		if _, err := os.Stat(filepath.Join(config.RepoPath, p)); err == nil {
			addArgs = append(addArgs, p)
		}
	}
	addCmd := exec.Command("git", addArgs...)
	addCmd.Dir = config.RepoPath
	if out, err := addCmd.CombinedOutput(); err != nil {
		return string(out), err
	}
	msg := fmt.Sprintf("Update landing sections: %s", time.Now().Format("2006-01-02 15:04:05"))
	commitCmd := exec.Command("git",
		"-c", "user.email="+config.GitUserEmail,
		"-c", "user.name="+config.GitUserName,
		"commit", "-m", msg,
	)
	commitCmd.Dir = config.RepoPath
	// Nothing to commit is not an error for publishing.
	_ = commitCmd.Run()
	return ExecuteGitWithToken(config.RepoPath, token, "push", config.GitRemote, config.GitBranch)
}

// Diff compares two files, falling back to the committed version of relPath
// when the files match.
func Diff(f1Path, f2Path, relPath string) (string, string) {
	cmd := exec.Command("git", "diff", "--no-index", f1Path, f2Path)
	output, err := cmd.CombinedOutput()

	if err != nil && cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == 1 {
		diffStr := string(output)
		diffStr = strings.ReplaceAll(diffStr, f1Path, "Saved")
		diffStr = strings.ReplaceAll(diffStr, f2Path, "Editor")
		return diffStr, "unsaved"
	}

	cmdGit := exec.Command("git", "diff", "HEAD", "--", relPath)
	cmdGit.Dir = config.RepoPath
	outGit, err := cmdGit.Output()

	if err == nil && len(outGit) > 0 {
		return string(outGit), "git"
	}
	return "", "none"
}

// DiffSection diffs the stored section file against the file doc would
// produce once saved.
func DiffSection(id string, doc models.SectionDocument) (string, string, error) {
	existing, err := GetSection(id)
	if err != nil {
		return "", "", err
	}
	current, err := renderSectionFile(existing, config.SectionFormat)
	if err != nil {
		return "", "", err
	}

	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = existing.UpdatedAt
	doc = doc.Normalized()
	proposed, err := renderSectionFile(doc, config.SectionFormat)
	if err != nil {
		return "", "", err
	}

	f1, err := os.CreateTemp("", "section_old_*")
	if err != nil {
		return "", "", err
	}
	defer os.Remove(f1.Name())
	f2, err := os.CreateTemp("", "section_new_*")
	if err != nil {
		f1.Close()
		return "", "", err
	}
	defer os.Remove(f2.Name())

	f1.Write(current)
	f2.Write(proposed)
	f1.Close()
	f2.Close()

	relPath := filepath.ToSlash(filepath.Join(config.SectionsDir, id+sectionExt))
	diffStr, diffType := Diff(f1.Name(), f2.Name(), relPath)
	return diffStr, diffType, nil
}
