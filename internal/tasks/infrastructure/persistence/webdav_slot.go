package persistence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/emersion/go-webdav"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// WebDAVAuth selects how the slot authenticates. Token wins over basic
// credentials; both empty means anonymous access.
type WebDAVAuth struct {
	Username string
	Password string
	Token    string
}

// WebDAVSlot stores the state as one remote file on a WebDAV server.
type WebDAVSlot struct {
	client   *webdav.Client
	endpoint string
	path     string
}

// NewWebDAVSlot creates a slot for the file at filePath below endpoint.
// httpClient may be nil.
func NewWebDAVSlot(ctx context.Context, httpClient *http.Client, endpoint, filePath string, auth WebDAVAuth) (*WebDAVSlot, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("webdav endpoint is required")
	}
	if filePath == "" || strings.HasSuffix(filePath, "/") {
		return nil, fmt.Errorf("webdav path %q must name a file", filePath)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var hc webdav.HTTPClient = httpClient
	switch {
	case auth.Token != "":
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: auth.Token,
			TokenType:   "Bearer",
		}))
	case auth.Username != "":
		hc = webdav.HTTPClientWithBasicAuth(httpClient, auth.Username, auth.Password)
	}

	client, err := webdav.NewClient(notFoundClient{hc}, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdav client: %w", err)
	}

	return &WebDAVSlot{
		client:   client,
		endpoint: endpoint,
		path:     path.Clean("/" + filePath),
	}, nil
}

func (s *WebDAVSlot) Name() string { return "webdav:" + s.path }

func (s *WebDAVSlot) Read(ctx context.Context) ([]byte, error) {
	rc, err := s.client.Open(ctx, s.path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Write uploads the whole document with a single PUT, creating missing
// parent collections first.
func (s *WebDAVSlot) Write(ctx context.Context, data []byte) error {
	s.ensureParents(ctx)

	wc, err := s.client.Create(ctx, s.path)
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

// ensureParents issues MKCOL for every parent collection. Servers answer
// 405 for collections that already exist, so errors are ignored and the
// PUT reports any real failure.
func (s *WebDAVSlot) ensureParents(ctx context.Context) {
	dir := path.Dir(s.path)
	if dir == "/" {
		return
	}

	current := ""
	for _, part := range strings.Split(strings.Trim(dir, "/"), "/") {
		current += "/" + part
		_ = s.client.Mkdir(ctx, current)
	}
}

// notFoundClient turns a 404 on GET into task.ErrSlotNotFound so Read can
// tell a missing slot from a failing server.
type notFoundClient struct {
	next webdav.HTTPClient
}

func (c notFoundClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.next.Do(req)
	if err != nil {
		return nil, err
	}
	if req.Method == http.MethodGet && resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, task.ErrSlotNotFound
	}
	return resp, nil
}
