package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type urlResource struct {
	url    string
	client *http.Client
}

// URL returns a read-only resource fetched over HTTP(S) with the given
// client. A nil client uses http.DefaultClient.
func URL(url string, client *http.Client) Resource {
	if client == nil {
		client = http.DefaultClient
	}
	return &urlResource{url: url, client: client}
}

func (u *urlResource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: status %d", u.url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (u *urlResource) Create(ctx context.Context) (io.WriteCloser, error) {
	return nil, fmt.Errorf("url resource %s is read-only", u.url)
}

func (u *urlResource) Exists(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.url, nil)
	if err != nil {
		return false
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (u *urlResource) String() string { return u.url }
