package services

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"reko-cms/pkg/config"
)

func ExecuteGitWithToken(dir, token string, args ...string) (string, error) {
	cmdGetUrl := exec.Command("git", "remote", "get-url", config.GitRemote)
	cmdGetUrl.Dir = dir
	outUrl, err := cmdGetUrl.Output()
	if err != nil {
		return "Failed to get remote url", err
	}
	remoteUrl := strings.TrimSpace(string(outUrl))
	u, err := url.Parse(remoteUrl)
	if err != nil {
		return "Invalid remote url", err
	}
	u.User = url.UserPassword("oauth2", token)
	authenticatedUrl := u.String()
	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == config.GitRemote {
			newArgs[i] = authenticatedUrl
		}
	}
	cmd := exec.Command("git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	safeLog := strings.ReplaceAll(string(output), authenticatedUrl, remoteUrl)
	if token != "" {
		safeLog = strings.ReplaceAll(safeLog, token, "***")
	}
	return safeLog, err
}

func SyncRepo(token string) (string, error) {
	out, err := ExecuteGitWithToken(config.RepoPath, token, "pull", config.GitRemote, config.GitBranch)
	if err == nil {
		InvalidateCache()
	}
	return out, err
}

// CommitAndPush commits the given repository paths and pushes the branch.
// An empty commit (nothing changed) is not an error.
func CommitAndPush(token, message string, paths ...string) (string, error) {
	addArgs := append([]string{"add", "--"}, paths...)
	addCmd := exec.Command("git", addArgs...)
	addCmd.Dir = config.RepoPath
	if out, err := addCmd.CombinedOutput(); err != nil {
		return string(out), err
	}

	msg := fmt.Sprintf("%s (%s)", message, time.Now().Format("2006-01-02 15:04:05"))
	commitCmd := exec.Command("git",
		"-c", "user.email="+config.GitUserEmail,
		"-c", "user.name="+config.GitUserName,
		"commit", "-m", msg,
	)
	commitCmd.Dir = config.RepoPath
	if out, err := commitCmd.CombinedOutput(); err != nil && !strings.Contains(string(out), "nothing to commit") {
		return string(out), err
	}
	log.Info("Committed content", "paths", paths, "message", message)
	return ExecuteGitWithToken(config.RepoPath, token, "push", config.GitRemote, config.GitBranch)
}

// Diff returns a unified diff between the saved file and the editor's
// rendering of it, or "" when they match.
func Diff(saved, edited []byte) (string, error) {
	oldName, err := writeTempFile("diff_old_*", saved)
	if err != nil {
		return "", err
	}
	defer os.Remove(oldName)
	newName, err := writeTempFile("diff_new_*", edited)
	if err != nil {
		return "", err
	}
	defer os.Remove(newName)

	cmd := exec.Command("git", "diff", "--no-index", oldName, newName)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return "", nil
	}
	if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == 1 {
		diffStr := string(output)
		diffStr = strings.ReplaceAll(diffStr, oldName, "Saved")
		diffStr = strings.ReplaceAll(diffStr, newName, "Editor")
		return diffStr, nil
	}
	return "", fmt.Errorf("git diff: %w: %s", err, output)
}

// writeTempFile stores data in a new temp file and returns its name. The file
// is removed again when the write fails.
func writeTempFile(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}
