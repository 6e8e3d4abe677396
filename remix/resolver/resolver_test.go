package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/config"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.New()
	cfg.APIBaseURL = srv.URL
	return New(cfg), srv
}

func TestSelectReleaseAsset(t *testing.T) {
	for _, tt := range []struct {
		name      string
		desc      string
		assets    []ReleaseAsset
		buildType string
		want      string
		wantErr   bool
	}{
		{
			name: "skips non-matching and symbols entries",
			desc: "first entry with the right suffix and no -symbols marker wins",
			assets: []ReleaseAsset{
				{Name: "remix-0.5.0-debug.zip"},
				{Name: "remix-0.5.0-symbols-release.zip"},
				{Name: "remix-0.5.0-release.zip"},
			},
			buildType: "release",
			want:      "remix-0.5.0-release.zip",
		},
		{
			name: "first match wins",
			desc: "selection is stable on list order, not on any other ranking",
			assets: []ReleaseAsset{
				{Name: "remix-0.4.0-release.zip"},
				{Name: "remix-0.5.0-release.zip"},
			},
			buildType: "release",
			want:      "remix-0.4.0-release.zip",
		},
		{
			name: "suffix must match exactly",
			desc: "a build type appearing mid-name is not enough",
			assets: []ReleaseAsset{
				{Name: "remix-release-0.5.0-debug.zip"},
			},
			buildType: "release",
			wantErr:   true,
		},
		{
			name:      "empty asset list",
			desc:      "no assets means resolution failure",
			assets:    nil,
			buildType: "release",
			wantErr:   true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectReleaseAsset(tt.assets, tt.buildType)
			if tt.wantErr {
				assert.ErrorIs(t, err, remix.ErrResolution{}, tt.desc)
				return
			}
			require.NoError(t, err, tt.desc)
			assert.Equal(t, tt.want, got.Name, tt.desc)
		})
	}
}

func TestSelectSuccessfulRun(t *testing.T) {
	// Runs are deliberately out of chronological order: list order, not
	// recency, governs the selection.
	runs := []WorkflowRun{
		{ID: 30, Conclusion: "failure"},
		{ID: 10, Conclusion: "success", ArtifactsURL: "first-success"},
		{ID: 20, Conclusion: "success", ArtifactsURL: "second-success"},
	}
	got, err := SelectSuccessfulRun(runs)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, "first-success", got.ArtifactsURL)

	_, err = SelectSuccessfulRun([]WorkflowRun{{Conclusion: "failure"}, {Conclusion: "cancelled"}})
	assert.ErrorIs(t, err, remix.ErrResolution{})
}

func TestSelectArtifactWithX64Match(t *testing.T) {
	arts := []Artifact{
		{ID: 1, Name: "rtx-remix-for-x86-games-release"},
		{ID: 2, Name: "dxvk-remix-release-symbols"},
		{ID: 3, Name: "dxvk-remix-release"},
		{ID: 4, Name: "dxvk-remix-release-other"},
	}
	got, err := SelectArtifact(arts, X64ArtifactMatch("release"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestSelectArtifactWithUnifiedX86Match(t *testing.T) {
	arts := []Artifact{
		{ID: 1, Name: "dxvk-remix-release"},
		{ID: 2, Name: "rtx-remix-for-x86-games-debug"},
		{ID: 3, Name: "rtx-remix-for-x86-games-release"},
	}
	got, err := SelectArtifact(arts, UnifiedX86ArtifactMatch("release", "rtx-remix-for-x86-games"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)

	_, err = SelectArtifact(arts, UnifiedX86ArtifactMatch("debugoptimized", "rtx-remix-for-x86-games"))
	assert.ErrorIs(t, err, remix.ErrResolution{})
}

func TestLatestRelease(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/NVIDIAGameWorks/rtx-remix/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"tag_name": "v0.5.0",
			"assets": [
				{"name": "remix-0.5.0-release-symbols.zip", "browser_download_url": "https://example.com/symbols.zip"},
				{"name": "remix-0.5.0-release.zip", "browser_download_url": "https://example.com/release.zip"}
			]
		}`)
	})
	c, _ := testClient(t, mux)

	asset, err := c.LatestRelease(context.Background(), "NVIDIAGameWorks/rtx-remix", "release")
	require.NoError(t, err)
	assert.Equal(t, "remix-0.5.0-release.zip", asset.Name)
	assert.Equal(t, "https://example.com/release.zip", asset.DownloadURL)
}

func TestLatestReleaseHTTPError(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.LatestRelease(context.Background(), "NVIDIAGameWorks/rtx-remix", "release")
	assert.ErrorIs(t, err, remix.ErrDownload{})

	var httpErr remix.ErrDownloadHTTP
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
}

func TestLatestReleaseMalformedJSON(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"assets": [`)
	}))

	_, err := c.LatestRelease(context.Background(), "NVIDIAGameWorks/rtx-remix", "release")
	assert.ErrorIs(t, err, remix.ErrDownload{})
}

func TestWorkflowArtifact(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/NVIDIAGameWorks/dxvk-remix/actions/runs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"workflow_runs": [
				{"id": 2, "conclusion": "failure", "artifacts_url": "%[1]s/bad"},
				{"id": 1, "conclusion": "success", "artifacts_url": "%[1]s/runs/1/artifacts"}
			]
		}`, baseURL)
	})
	mux.HandleFunc("/runs/1/artifacts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"artifacts": [
				{"id": 100, "name": "dxvk-remix-release-symbols"},
				{"id": 200, "name": "dxvk-remix-release"}
			]
		}`)
	})
	c, srv := testClient(t, mux)
	baseURL = srv.URL

	asset, err := c.WorkflowArtifact(context.Background(), ArtifactSource{
		Repo:  "NVIDIAGameWorks/dxvk-remix",
		Match: X64ArtifactMatch("release"),
	})
	require.NoError(t, err)
	assert.Equal(t, "dxvk-remix-release", asset.Name)
	assert.Equal(t, int64(200), asset.ID)
	// The download URL goes through the redirect service, not the API.
	assert.Equal(t, "https://nightly.link/NVIDIAGameWorks/dxvk-remix/actions/artifacts/200.zip", asset.DownloadURL)
}

func TestResolveArtifactsIsolatesFailures(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/broken/repo/actions/runs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/repos/working/repo/actions/runs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"workflow_runs": [{"id": 1, "conclusion": "success", "artifacts_url": "%s/runs/1/artifacts"}]}`, baseURL)
	})
	mux.HandleFunc("/runs/1/artifacts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"artifacts": [{"id": 7, "name": "bridge-remix-release"}]}`)
	})
	c, srv := testClient(t, mux)
	baseURL = srv.URL

	match := func(name string) bool { return true }
	resolved, err := c.ResolveArtifacts(context.Background(), []ArtifactSource{
		{Repo: "broken/repo", Match: match},
		{Repo: "working/repo", DestSubdir: ".trex", Match: match},
	})
	require.NoError(t, err, "one failing repository must not abort its siblings")
	require.Len(t, resolved, 1)
	assert.Equal(t, "bridge-remix-release", resolved[0].Asset.Name)
	assert.Equal(t, ".trex", resolved[0].Source.DestSubdir)
}

func TestResolveArtifactsAllFailed(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	match := func(name string) bool { return true }
	_, err := c.ResolveArtifacts(context.Background(), []ArtifactSource{
		{Repo: "a/b", Match: match},
		{Repo: "c/d", Match: match},
	})
	assert.ErrorIs(t, err, remix.ErrResolution{})
}

func TestClientSendsUserAgent(t *testing.T) {
	var gotUA string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"assets": [{"name": "remix-0.5.0-release.zip", "browser_download_url": "u"}]}`)
	}))

	_, err := c.LatestRelease(context.Background(), "NVIDIAGameWorks/rtx-remix", "release")
	require.NoError(t, err)
	assert.Equal(t, "RTX Remix Downloader", gotUA)
}
