package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/faisalcam/cctv-shop-api/pkg/config"
)

// UploadResult describes a stored image.
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// Client talks to the hosted image CDN used for quotation photos.
// Uploads and deletions are fallible network calls; callers decide whether a
// failure aborts the owning operation.
type Client struct {
	http   *resty.Client
	folder string
}

// New builds an image store client. A client with an empty base URL is
// disabled and rejects all calls.
func New(cfg config.ImageStoreConfig) *Client {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.APIKey, cfg.APISecret).
		SetTimeout(cfg.Timeout)

	return &Client{http: c, folder: cfg.Folder}
}

// Enabled reports whether the client is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.http.BaseURL != ""
}

// Store uploads the image and returns its public URL.
func (c *Client) Store(ctx context.Context, filename string, reader io.Reader) (*UploadResult, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("image store is not configured")
	}

	var result UploadResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, reader).
		SetFormData(map[string]string{"folder": c.folder}).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		return nil, fmt.Errorf("upload image %s: %w", filename, err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("upload image %s: unexpected status %d", filename, resp.StatusCode())
	}
	if result.URL == "" {
		return nil, fmt.Errorf("upload image %s: empty url in response", filename)
	}

	return &result, nil
}

// Remove deletes a previously stored image by its public URL.
func (c *Client) Remove(ctx context.Context, url string) error {
	if !c.Enabled() {
		return fmt.Errorf("image store is not configured")
	}

	publicID := publicIDFromURL(url, c.folder)
	if publicID == "" {
		return fmt.Errorf("remove image: cannot derive public id from %q", url)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"public_id": publicID}).
		Post("/destroy")
	if err != nil {
		return fmt.Errorf("remove image %s: %w", publicID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("remove image %s: unexpected status %d", publicID, resp.StatusCode())
	}

	return nil
}

// publicIDFromURL extracts "<folder>/<name>" from a delivery URL, dropping
// the file extension the way the CDN's destroy API expects.
func publicIDFromURL(url, folder string) string {
	idx := strings.Index(url, "/"+folder+"/")
	if idx < 0 {
		return ""
	}
	id := url[idx+1:]
	if ext := path.Ext(id); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	return id
}
