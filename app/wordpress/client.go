package wordpress

import (
	"bytes"
	"cmp"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultImageType = "image/jpeg"

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// Client talks to a WordPress REST API using Basic authentication.
type Client struct {
	baseURL    string
	auth       string
	userAgent  string
	httpClient HTTPClient
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. https://example.com/wp-json).
func NewClient(baseURL, username, password string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       BasicAuth(username, password),
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BasicAuth encodes the Basic authorization credential for username:password.
func BasicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// EncodePost renders the request body of a post. HTML is left unescaped.
func EncodePost(post Post) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(post); err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CreatePost creates a post and returns the created resource.
func (c *Client) CreatePost(ctx context.Context, post Post) (*CreatedPost, error) {
	payload, err := EncodePost(post)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, "/wp/v2/posts", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var created CreatedPost
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse post response: %w", err)
	}

	return &created, nil
}

// UploadMedia fetches the image at imageURL and uploads it to the media
// library, returning the new media id.
func (c *Client) UploadMedia(ctx context.Context, imageURL string) (int, error) {
	data, contentType, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, "/wp/v2/media", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, FileName(imageURL)))
	req.Header.Set("Content-Type", cmp.Or(contentType, defaultImageType))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to upload media: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var media mediaResponse
	jsonErr := json.Unmarshal(body, &media)

	if !isSuccess(resp.StatusCode) {
		return 0, fmt.Errorf("media upload failed (%s): %s", resp.Status, cmp.Or(media.Message, "upload failed"))
	}
	if jsonErr != nil {
		return 0, fmt.Errorf("failed to parse media response: %w", jsonErr)
	}
	if media.ID == 0 {
		return 0, fmt.Errorf("media response has no id")
	}

	return media.ID, nil
}

func (c *Client) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, "", fmt.Errorf("failed to fetch image %s: HTTP %d", imageURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+c.auth)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return req, nil
}

// FileName derives the upload file name from the raw last segment of
// imageURL, without its query string. A trailing slash yields "".
func FileName(imageURL string) string {
	name := imageURL[strings.LastIndex(imageURL, "/")+1:]
	name, _, _ = strings.Cut(name, "?")
	return name
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
