package lib

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/denormal/go-gitignore"
)

// IgnoreFilename is the per-tree file holding gitignore-style patterns for
// entries a tree copy should skip.
const IgnoreFilename = ".fcopyignore"

// defaultIgnorePatterns are skipped in every tree copy.
var defaultIgnorePatterns = []string{
	".git/",
	".git/**",
	IgnoreFilename,
}

// IgnoreMatcher decides which entries below a source root are skipped.
type IgnoreMatcher struct {
	root string

	// The gitignore library is not safe for concurrent matching.
	mu      sync.Mutex
	matcher gitignore.GitIgnore
}

// NewIgnoreMatcher compiles the default patterns plus those in ignoreFile.
// A relative ignoreFile is resolved against root; a missing file only
// disables the user patterns.
func NewIgnoreMatcher(root, ignoreFile string) *IgnoreMatcher {
	if ignoreFile == "" {
		ignoreFile = IgnoreFilename
	}
	if !filepath.IsAbs(ignoreFile) {
		ignoreFile = filepath.Join(root, ignoreFile)
	}

	rawPatterns := make([]string, len(defaultIgnorePatterns))
	copy(rawPatterns, defaultIgnorePatterns)
	if content, err := os.ReadFile(ignoreFile); err == nil {
		rawPatterns = append(rawPatterns, strings.Split(string(content), "\n")...)
	}

	return &IgnoreMatcher{
		root:    root,
		matcher: compilePatterns(root, rawPatterns),
	}
}

func compilePatterns(root string, rawPatterns []string) gitignore.GitIgnore {
	var patterns []string
	for _, p := range rawPatterns {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.ReplaceAll(trimmed, "\\", "/")
		patterns = append(patterns, trimmed)
		// Directory patterns also cover everything below the directory.
		if strings.HasSuffix(trimmed, "/") && !strings.HasSuffix(trimmed, "**/") {
			patterns = append(patterns, trimmed+"**")
		}
	}

	matcher := gitignore.New(
		strings.NewReader(strings.Join(patterns, "\n")),
		root,
		func(gitignore.Error) bool { return true },
	)
	if matcher == nil {
		return gitignore.New(strings.NewReader(""), root, nil)
	}
	return matcher
}

// Ignored reports whether path, absolute or relative to the root, is skipped.
func (m *IgnoreMatcher) Ignored(path string, isDir bool) bool {
	rel := path
	if filepath.IsAbs(path) {
		if !IsWithin(m.root, path) {
			return false
		}
		var err error
		rel, err = filepath.Rel(m.root, path)
		if err != nil {
			return false
		}
	}
	if rel == "." {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	match := m.matcher.Relative(filepath.ToSlash(rel), isDir)
	if match == nil {
		return false
	}
	return match.Ignore()
}
