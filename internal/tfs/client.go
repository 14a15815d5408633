package tfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	gitfserrors "github.com/gius/git-tfs/internal/errors"
)

const apiVersion = "6.0"

// Client talks to the TFVC REST surface of a TFS/Azure DevOps collection.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBasicAuth authenticates with a username/password pair. For personal
// access tokens the username is empty and the token is the password.
func WithBasicAuth(username, password string) ClientOption {
	return func(c *Client) {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.httpClient.Transport = &basicAuthTransport{
			username: username,
			password: password,
			base:     base,
		}
	}
}

// WithTokenSource authenticates with OAuth bearer tokens
func WithTokenSource(ctx context.Context, source oauth2.TokenSource) ClientOption {
	return func(c *Client) {
		c.httpClient = oauth2.NewClient(ctx, source)
		c.httpClient.Timeout = defaultRequestTimeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

const defaultRequestTimeout = 5 * time.Minute

type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(clone)
}

// NewClient creates a client for the collection at baseURL,
// e.g. "http://tfs:8080/tfs/DefaultCollection".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid tfs collection url %q: %w", baseURL, err)
	}
	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the collection URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) apiURL(path string, query url.Values) string {
	query.Set("api-version", apiVersion)
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &gitfserrors.TfsRequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(detail)),
		}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, rawURL, nil, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

type changesetList struct {
	Count int         `json:"count"`
	Value []Changeset `json:"value"`
}

// GetChangesets lists changesets touching itemPath with ids >= fromId, in
// ascending id order.
func (c *Client) GetChangesets(ctx context.Context, itemPath string, fromId int) ([]Changeset, error) {
	query := url.Values{}
	query.Set("searchCriteria.itemPath", itemPath)
	query.Set("$orderby", "id asc")
	if fromId > 0 {
		query.Set("searchCriteria.fromId", strconv.Itoa(fromId))
	}

	var list changesetList
	if err := c.getJSON(ctx, c.apiURL("/_apis/tfvc/changesets", query), &list); err != nil {
		return nil, err
	}
	return list.Value, nil
}

type changeList struct {
	Count int      `json:"count"`
	Value []Change `json:"value"`
}

// GetChangesetChanges lists the item changes contained in a changeset
func (c *Client) GetChangesetChanges(ctx context.Context, changesetId int) ([]Change, error) {
	query := url.Values{}
	rawURL := c.apiURL(fmt.Sprintf("/_apis/tfvc/changesets/%d/changes", changesetId), query)

	var list changeList
	if err := c.getJSON(ctx, rawURL, &list); err != nil {
		return nil, err
	}
	return list.Value, nil
}

// GetItemContent downloads the content of a server item at a changeset
// version. The caller must close the returned reader.
func (c *Client) GetItemContent(ctx context.Context, serverPath string, changesetId int) (io.ReadCloser, error) {
	query := url.Values{}
	query.Set("path", serverPath)
	query.Set("versionDescriptor.versionType", "changeset")
	query.Set("versionDescriptor.version", strconv.Itoa(changesetId))

	resp, err := c.do(ctx, http.MethodGet, c.apiURL("/_apis/tfvc/items", query), nil, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

type createChangesetBody struct {
	Comment string                `json:"comment"`
	Changes []createChangesetItem `json:"changes"`
}

type createChangesetItem struct {
	ChangeType string             `json:"changeType"`
	Item       createChangesetRef `json:"item"`
	NewContent *newContent        `json:"newContent,omitempty"`
}

type createChangesetRef struct {
	Path string `json:"path"`
}

type newContent struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// CreateChangeset sends a checkin to the server and returns the committed
// changeset.
func (c *Client) CreateChangeset(ctx context.Context, req CreateChangesetRequest) (*Changeset, error) {
	body := createChangesetBody{Comment: req.Comment}
	for _, change := range req.Changes {
		item := createChangesetItem{
			ChangeType: change.ChangeType,
			Item:       createChangesetRef{Path: change.ServerPath},
		}
		if change.ChangeType != "delete" {
			item.NewContent = &newContent{Content: change.Content, ContentType: "rawtext"}
		}
		body.Changes = append(body.Changes, item)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	rawURL := c.apiURL("/_apis/tfvc/changesets", url.Values{})
	resp, err := c.do(ctx, http.MethodPost, rawURL, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var changeset Changeset
	if err := json.NewDecoder(resp.Body).Decode(&changeset); err != nil {
		return nil, err
	}
	return &changeset, nil
}
