// Package resolver turns a build selection into concrete download URLs
// by querying the GitHub REST API. Stable builds come from the latest
// tagged release of the release repository; development builds come from
// the artifacts of CI workflow runs, downloaded through an
// unauthenticated redirect service.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/config"
)

// ReleaseAsset is a file attached to a tagged release.
type ReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

type release struct {
	TagName string         `json:"tag_name"`
	Assets  []ReleaseAsset `json:"assets"`
}

// WorkflowRun is one entry of the repository's workflow run list.
type WorkflowRun struct {
	ID           int64  `json:"id"`
	Conclusion   string `json:"conclusion"`
	ArtifactsURL string `json:"artifacts_url"`
}

type workflowRuns struct {
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// Artifact is a CI-produced archive attached to a workflow run.
type Artifact struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type artifactList struct {
	Artifacts []Artifact `json:"artifacts"`
}

// ArtifactSource describes one CI repository to resolve an artifact
// from: which repository, what the artifact name must look like and
// where its contents merge into the target directory ("" = root).
type ArtifactSource struct {
	Repo       string
	DestSubdir string
	Match      func(name string) bool
}

// Resolved pairs a resolved asset with the source it came from.
type Resolved struct {
	Asset  remix.RemoteAsset
	Source ArtifactSource
}

// Client queries the GitHub REST API. All requests are unauthenticated
// GETs carrying a custom user agent.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	redirectTemplate string
	userAgent        string
}

func New(cfg *config.InstallerConfig) *Client {
	return &Client{
		httpClient:       &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:          cfg.APIBaseURL,
		redirectTemplate: cfg.ArtifactRedirectTemplate,
		userAgent:        cfg.UserAgent,
	}
}

// LatestRelease resolves the newest stable release asset for buildType
// from repo.
func (c *Client) LatestRelease(ctx context.Context, repo, buildType string) (remix.RemoteAsset, error) {
	var rel release
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, repo)
	if err := c.getJSON(ctx, url, &rel); err != nil {
		return remix.RemoteAsset{}, err
	}

	asset, err := SelectReleaseAsset(rel.Assets, buildType)
	if err != nil {
		return remix.RemoteAsset{}, err
	}
	remix.GetLogger().Info("found stable release asset", "name", asset.Name, "url", asset.BrowserDownloadURL)
	return remix.RemoteAsset{Name: asset.Name, DownloadURL: asset.BrowserDownloadURL}, nil
}

// WorkflowArtifact resolves the matching artifact of the first
// successful workflow run of src.Repo. The download URL is synthesized
// through the redirect service because artifact downloads require
// authentication on the API itself.
func (c *Client) WorkflowArtifact(ctx context.Context, src ArtifactSource) (remix.RemoteAsset, error) {
	var runs workflowRuns
	url := fmt.Sprintf("%s/repos/%s/actions/runs", c.baseURL, src.Repo)
	if err := c.getJSON(ctx, url, &runs); err != nil {
		return remix.RemoteAsset{}, err
	}

	run, err := SelectSuccessfulRun(runs.WorkflowRuns)
	if err != nil {
		return remix.RemoteAsset{}, err
	}

	var arts artifactList
	if err := c.getJSON(ctx, run.ArtifactsURL, &arts); err != nil {
		return remix.RemoteAsset{}, err
	}

	art, err := SelectArtifact(arts.Artifacts, src.Match)
	if err != nil {
		return remix.RemoteAsset{}, err
	}
	return remix.RemoteAsset{
		Name:        art.Name,
		DownloadURL: fmt.Sprintf(c.redirectTemplate, src.Repo, art.ID),
		ID:          art.ID,
	}, nil
}

// ResolveArtifacts resolves every source in turn. A failing repository
// is logged and does not prevent attempting its siblings; an error is
// returned only when nothing resolved at all.
func (c *Client) ResolveArtifacts(ctx context.Context, sources []ArtifactSource) ([]Resolved, error) {
	var resolved []Resolved
	for _, src := range sources {
		asset, err := c.WorkflowArtifact(ctx, src)
		if err != nil {
			remix.GetLogger().Error(err, "artifact resolution failed", "repo", src.Repo)
			continue
		}
		resolved = append(resolved, Resolved{Asset: asset, Source: src})
	}
	if len(resolved) == 0 {
		return nil, remix.ErrResolution{Msg: "no artifacts could be resolved from any repository"}
	}
	return resolved, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return remix.ErrDownloadHTTP{StatusCode: res.StatusCode, URL: url}
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return remix.ErrDownload{Msg: fmt.Sprintf("malformed response from %s: %s", url, err)}
	}
	return nil
}

// SelectReleaseAsset returns the first asset, in list order, whose name
// ends with "-<buildType>.zip" and does not carry the -symbols marker.
func SelectReleaseAsset(assets []ReleaseAsset, buildType string) (ReleaseAsset, error) {
	suffix := fmt.Sprintf("-%s.zip", buildType)
	for _, a := range assets {
		if strings.HasSuffix(a.Name, suffix) && !strings.Contains(a.Name, "-symbols") {
			return a, nil
		}
	}
	return ReleaseAsset{}, remix.ErrResolution{Msg: fmt.Sprintf("no suitable release package found for build type %q", buildType)}
}

// SelectSuccessfulRun returns the first run, in list order, whose
// conclusion is "success". List order is not necessarily recency order;
// the literal first-match behavior is kept on purpose.
func SelectSuccessfulRun(runs []WorkflowRun) (WorkflowRun, error) {
	for _, r := range runs {
		if r.Conclusion == "success" {
			return r, nil
		}
	}
	return WorkflowRun{}, remix.ErrResolution{Msg: "no successful workflow run found"}
}

// SelectArtifact returns the first artifact, in list order, whose name
// satisfies match.
func SelectArtifact(arts []Artifact, match func(name string) bool) (Artifact, error) {
	for _, a := range arts {
		if match(a.Name) {
			return a, nil
		}
	}
	return Artifact{}, remix.ErrResolution{Msg: "no matching artifact found"}
}

// X64ArtifactMatch matches the plain x64 renderer artifact for
// buildType, excluding the x86 and debug-symbol variants.
func X64ArtifactMatch(buildType string) func(name string) bool {
	return func(name string) bool {
		return strings.Contains(name, buildType) &&
			!strings.Contains(name, "x86") &&
			!strings.Contains(name, "symbols")
	}
}

// UnifiedX86ArtifactMatch matches the single-archive x86 artifact for
// buildType carrying the unified package marker.
func UnifiedX86ArtifactMatch(buildType, marker string) func(name string) bool {
	return func(name string) bool {
		return strings.Contains(name, buildType) && strings.Contains(name, marker)
	}
}
