package services

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"reko-cms/pkg/config"
	"reko-cms/pkg/models"
)

var (
	articleCache []models.ArticleSummary
	cacheMutex   sync.Mutex
	cacheLoaded  bool
)

// ListArticles returns a summary of every content file, cached until the
// next write.
func ListArticles() ([]models.ArticleSummary, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if cacheLoaded {
		return articleCache, nil
	}

	contentDir := filepath.Join(config.RepoPath, config.ContentDir)
	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		articleCache, cacheLoaded = nil, true
		return nil, nil
	}

	dirtyFiles, _ := getGitDirtyFiles(config.RepoPath)

	var articles []models.ArticleSummary
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		relPath, _ := filepath.Rel(contentDir, path)
		slug := strings.TrimSuffix(filepath.ToSlash(relPath), ".md")

		repoRelPath, _ := filepath.Rel(config.RepoPath, path)
		summary := models.ArticleSummary{
			Slug:    slug,
			Title:   slug, // Default to slug
			Status:  models.StatusDraft,
			IsDirty: dirtyFiles[filepath.ToSlash(repoRelPath)],
		}

		if content, err := os.ReadFile(path); err == nil {
			if fm, _, _, err := ParseFrontMatter(content); err == nil {
				if t, ok := fm[keyTitle].(string); ok && t != "" {
					summary.Title = t
				}
				if s, ok := fm[keyStatus].(string); ok {
					summary.Status = s
				}
			}
		}
		articles = append(articles, summary)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].Slug < articles[j].Slug })
	articleCache = articles
	cacheLoaded = true
	return articleCache, nil
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
	cacheLoaded = false
	articleCache = nil
}
