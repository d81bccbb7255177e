package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/Fepozopo/textools/pkg/internal/log"
)

const updateRepo = "Fepozopo/textools"

// githubRelease is the subset of the GitHub releases payload we read.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// fetchReleases lists the releases of repo.
func fetchReleases(apiBase, repo string) ([]githubRelease, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(fmt.Sprintf("%s/repos/%s/releases", apiBase, repo))
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}
	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}
	return releases, nil
}

// latestRelease picks the highest semver among published, non-prerelease
// releases. The version is taken from the tag, or the release name when the
// tag has none. The asset prefers names that mention an OS or architecture.
func latestRelease(releases []githubRelease) (*selfupdate.Release, bool) {
	type candidate struct {
		ver      semver.Version
		assetURL string
		name     string
	}
	var candidates []candidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
		}
		if match == "" {
			continue
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			lower := strings.ToLower(a.Name)
			if strings.Contains(lower, "darwin") || strings.Contains(lower, "linux") || strings.Contains(lower, "windows") || strings.Contains(lower, "amd64") || strings.Contains(lower, "arm64") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, candidate{ver: v, assetURL: assetURL, name: r.Name})
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ver.GT(candidates[j].ver)
	})
	best := candidates[0]
	return &selfupdate.Release{Version: best.ver, AssetURL: best.assetURL, Name: best.name}, true
}

// updater holds the collaborators of CheckForUpdates so tests can replace
// the network and the binary swap.
type updater struct {
	current string
	fetch   func() ([]githubRelease, error)
	apply   func(assetURL string) error
}

func defaultUpdater() updater {
	return updater{
		current: Version,
		fetch: func() ([]githubRelease, error) {
			return fetchReleases("https://api.github.com", updateRepo)
		},
		apply: func(assetURL string) error {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("could not locate executable: %w", err)
			}
			return selfupdate.UpdateTo(assetURL, exe)
		},
	}
}

// CheckForUpdates reports the latest release and, after confirmation on in
// (or straight away when assumeYes is set), replaces the running binary.
func CheckForUpdates(w io.Writer, in io.Reader, assumeYes bool) error {
	return defaultUpdater().run(w, in, assumeYes)
}

func (u updater) run(w io.Writer, in io.Reader, assumeYes bool) error {
	fmt.Fprintf(w, "Current version: %s\n", u.current)
	releases, err := u.fetch()
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	latest, found := latestRelease(releases)
	if !found {
		fmt.Fprintf(w, "No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Fprintf(w, "Latest version: %s\n", latest.Version)

	currentVer, perr := semver.Parse(strings.TrimPrefix(u.current, "v"))
	if perr != nil {
		log.Warningf("could not parse current version %q: %v", u.current, perr)
	} else if latest.Version.LTE(currentVer) {
		fmt.Fprintf(w, "You are already running the latest version: %s.\n", currentVer)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(w, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		fmt.Fprintln(w, "Please visit the project releases page to download the new version.")
		return nil
	}

	if !assumeYes {
		answer, err := PromptLine(in, w, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
		if err != nil {
			return fmt.Errorf("failed reading input: %w", err)
		}
		answer = strings.ToLower(answer)
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(w, "Update cancelled.")
			return nil
		}
	}

	fmt.Fprintln(w, "Updating...")
	if err := u.apply(latest.AssetURL); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(w, "Updated to version %s.\n", latest.Version)
	return nil
}
