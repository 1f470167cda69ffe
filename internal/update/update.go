// Package update checks GitHub for newer released versions.
package update

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v45/github"
	"github.com/gookit/color"

	"github.com/Ddoupal/IPMonitor/internal/consts"
)

var versionTagRegex = regexp.MustCompile(`^v?(\d+\.\d+\.\d+)$`)

// Check queries the latest GitHub release and prints whether a newer
// version is available.
func Check(ctx context.Context) error {
	c := github.NewClient(nil)

	/* unauthenticated requests from the same IP are limited to 60 per hour. */
	latestRelease, _, err := c.Repositories.GetLatestRelease(ctx, consts.Owner, consts.Repo)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}

	latestTagName := latestRelease.GetTagName()
	latestVersion := versionTagRegex.FindStringSubmatch(latestTagName)
	if len(latestVersion) == 0 {
		return fmt.Errorf("check for updates: unexpected release tag %q", latestTagName)
	}

	comparison := compareVersions(consts.Version, latestVersion[1])

	switch {
	case comparison < 0:
		color.Cyan.Printf("Found newer version %s\n", latestVersion[1])
		color.Cyan.Printf("Please update from the URL below:\n")
		color.Cyan.Printf("https://github.com/%s/%s/releases/tag/%s\n",
			consts.Owner, consts.Repo, latestTagName)
	case comparison > 0:
		color.Cyan.Printf("Current version %s is newer than the latest release %s\n",
			consts.Version, latestVersion[1])
	default:
		color.Cyan.Printf("You have the latest version: %s\n", consts.Version)
	}

	return nil
}

// compareVersions compares two dotted version strings.
func compareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		n1, _ := strconv.Atoi(parts1[i])
		n2, _ := strconv.Atoi(parts2[i])

		if n1 < n2 {
			return -1
		}
		if n1 > n2 {
			return 1
		}
	}

	// for cases in which version numbers differ in length
	if len(parts1) < len(parts2) {
		return -1
	}
	if len(parts1) > len(parts2) {
		return 1
	}

	return 0
}
