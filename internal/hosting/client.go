package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	nethttp "net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/caldera-app/shipkit/internal/config"
)

// retryLogger implements the retryablehttp.LeveledLogger interface.
type retryLogger struct{}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Printf("[RETRY ERROR] %s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings, not all info
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Printf("[RETRY WARN] %s %v", msg, keysAndValues)
}

// Client talks to the hosting service's REST API: releases, release
// assets, tag refs, and the shared gist that carries the auto-update
// document.
type Client struct {
	httpClient *nethttp.Client
	baseURL    string
	uploadURL  string
	repo       string
	token      string
}

// Release is the hosting service's release record, reduced to the fields
// the workflows use.
type Release struct {
	ID      int64  `json:"id"`
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
}

// NewClient creates an API client from the loaded configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("hosting API base URL is empty")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 4
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = &retryLogger{}

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		uploadURL:  strings.TrimSuffix(cfg.UploadBaseURL, "/"),
		repo:       cfg.Repo,
		token:      cfg.APIToken,
	}, nil
}

// doRequest performs an authenticated JSON request against the API base.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// CreateRelease creates a release for the given tag. A tag conflict
// reported by the service is ErrReleaseAlreadyExists, propagated without
// retry.
func (c *Client) CreateRelease(ctx context.Context, tag, name, notes string, prerelease bool) (*Release, error) {
	body := map[string]interface{}{
		"tag_name":   tag,
		"name":       name,
		"body":       notes,
		"prerelease": prerelease,
	}

	resp, err := c.doRequest(ctx, "POST", "/repos/"+c.repo+"/releases", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusCreated && resp.StatusCode != nethttp.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		bodyStr := string(respBody)
		if resp.StatusCode == nethttp.StatusUnprocessableEntity || resp.StatusCode == nethttp.StatusConflict {
			bodyLower := strings.ToLower(bodyStr)
			if strings.Contains(bodyLower, "already_exists") || strings.Contains(bodyLower, "already exists") {
				return nil, fmt.Errorf("%w: tag %s: %s", ErrReleaseAlreadyExists, tag, bodyStr)
			}
		}
		return nil, fmt.Errorf("create release %s failed: status %d: %s", tag, resp.StatusCode, bodyStr)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release response: %w", err)
	}
	return &release, nil
}

// GetReleaseByTag looks up an existing release. A missing release is
// ErrReleaseNotFound so callers can distinguish it from transport errors.
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	resp, err := c.doRequest(ctx, "GET", "/repos/"+c.repo+"/releases/tags/"+url.PathEscape(tag), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == nethttp.StatusNotFound {
		return nil, fmt.Errorf("%w: tag %s", ErrReleaseNotFound, tag)
	}
	if resp.StatusCode != nethttp.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get release %s failed: status %d: %s", tag, resp.StatusCode, respBody)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release response: %w", err)
	}
	return &release, nil
}

// UploadAsset attaches a local file to a release. Upload uses the
// separate upload host; the asset keeps the file's base name.
func (c *Client) UploadAsset(ctx context.Context, releaseID int64, name, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open asset %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat asset %s: %w", path, err)
	}

	uploadURL := fmt.Sprintf("%s/repos/%s/releases/%d/assets?name=%s",
		c.uploadURL, c.repo, releaseID, url.QueryEscape(name))

	req, err := nethttp.NewRequestWithContext(ctx, "POST", uploadURL, file)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload of %s failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusCreated && resp.StatusCode != nethttp.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload of %s failed: status %d: %s", name, resp.StatusCode, respBody)
	}
	return nil
}

// DeleteRelease deletes a release by ID. The tag ref survives and must
// be deleted separately via DeleteTag.
func (c *Client) DeleteRelease(ctx context.Context, releaseID int64) error {
	resp, err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/repos/%s/releases/%d", c.repo, releaseID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusNoContent && resp.StatusCode != nethttp.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete release %d failed: status %d: %s", releaseID, resp.StatusCode, respBody)
	}
	return nil
}

// DeleteTag deletes the git ref backing a release tag.
func (c *Client) DeleteTag(ctx context.Context, tag string) error {
	resp, err := c.doRequest(ctx, "DELETE", "/repos/"+c.repo+"/git/refs/tags/"+url.PathEscape(tag), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusNoContent && resp.StatusCode != nethttp.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete tag %s failed: status %d: %s", tag, resp.StatusCode, respBody)
	}
	return nil
}

// UpdateGistFile replaces the content of one named file in the shared
// gist. There is a single update channel system-wide; whoever publishes
// last wins.
func (c *Client) UpdateGistFile(ctx context.Context, gistID, fileName, content string) error {
	body := map[string]interface{}{
		"files": map[string]interface{}{
			fileName: map[string]string{"content": content},
		},
	}

	resp, err := c.doRequest(ctx, "PATCH", "/gists/"+gistID, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("update gist %s failed: status %d: %s", gistID, resp.StatusCode, respBody)
	}
	return nil
}
