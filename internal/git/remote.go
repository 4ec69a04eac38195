package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RemoteURL returns the browsable https URL of the configured remote.
func (r *Repository) RemoteURL(ctx context.Context) (string, error) {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, r.remote)
		}
		return "", fmt.Errorf("reading remote %s: %w", r.remote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return "", fmt.Errorf("%w: %s has no URL", ErrRemoteNotFound, r.remote)
	}

	normalized := NormalizeRemoteURL(urls[0])
	logDebug("[git] RemoteURL: %s -> %s", urls[0], normalized)
	return normalized, nil
}

// NormalizeRemoteURL converts a clone URL into the https form used for web
// links. SCP-style and ssh:// URLs are rewritten, credentials and ports are
// dropped, and a trailing ".git" is removed:
//   - "git@github.com:owner/repo.git" → "https://github.com/owner/repo"
//   - "ssh://git@host:22/owner/repo" → "https://host/owner/repo"
//   - "https://token@github.com/owner/repo.git" → "https://github.com/owner/repo"
func NormalizeRemoteURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if isSCPLike(s) {
		userHost, path, _ := strings.Cut(s, ":")
		host := userHost
		if _, h, ok := strings.Cut(userHost, "@"); ok {
			host = h
		}
		return trimRepoSuffix("https://" + host + "/" + strings.TrimPrefix(path, "/"))
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return trimRepoSuffix(s)
	}

	scheme := u.Scheme
	if isSSHURL(s) || scheme == "git" {
		scheme = "https"
	}
	host := u.Host
	if scheme == "https" && u.Port() != "" {
		host = u.Hostname()
	}

	return trimRepoSuffix(scheme + "://" + host + u.EscapedPath())
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// isSCPLike reports whether s has the "[user@]host:path" form without a scheme.
func isSCPLike(s string) bool {
	if strings.Contains(s, "://") {
		return false
	}
	colon := strings.Index(s, ":")
	slash := strings.Index(s, "/")
	return colon > 0 && (slash < 0 || colon < slash)
}

// trimRepoSuffix removes a trailing slash and ".git".
func trimRepoSuffix(s string) string {
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}
