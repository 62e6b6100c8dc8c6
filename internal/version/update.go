package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// ReleasesURL is the GitHub API endpoint for the latest release
const ReleasesURL = "https://api.github.com/repos/young1lin/lsgrid/releases/latest"

// ReleaseInfo represents a GitHub release.
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// Checker asks GitHub for the latest release. It only runs when asked to
// and keeps nothing on disk.
type Checker struct {
	current    string
	url        string
	httpClient *http.Client
}

// NewChecker creates a checker for the given current version
func NewChecker(current string) *Checker {
	return &Checker{
		current:    current,
		url:        ReleasesURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Check returns the latest release when it is newer than the current
// version, and nil when there is nothing to update to
func (c *Checker) Check(ctx context.Context) (*ReleaseInfo, error) {
	release, err := c.fetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	if c.needsUpdate(release.TagName) {
		return release, nil
	}
	return nil, nil
}

func (c *Checker) fetchLatest(ctx context.Context) (*ReleaseInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "lsgrid")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

// needsUpdate returns true if the current version is older than tag.
// A dev build always does.
func (c *Checker) needsUpdate(tag string) bool {
	latest, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return false
	}
	current, err := semver.NewVersion(strings.TrimPrefix(c.current, "v"))
	if err != nil {
		return true
	}
	return latest.GreaterThan(current)
}
