// Package source loads hOCR documents and page images from URLs and local
// paths.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Loader fetches documents. The zero value uses http.DefaultClient.
type Loader struct {
	Client *http.Client
}

// Get returns the content behind location, which is an http(s) URL, a
// file:// URL or a plain path. Failures are returned as is; nothing is
// retried.
func (l Loader) Get(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters
		return readFile(location)
	}

	switch u.Scheme {
	case "file":
		return readFile(u.Path)
	case "http", "https":
		return l.fetch(ctx, location)
	}
	return nil, fmt.Errorf("error loading url %q: unsupported scheme %q", location, u.Scheme)
}

// Fetch runs Get and hands the outcome to done: the text on success, a
// descriptive error otherwise.
func (l Loader) Fetch(ctx context.Context, location string, done func(text string, err error)) {
	data, err := l.Get(ctx, location)
	if err != nil {
		done("", err)
		return
	}
	done(string(data), nil)
}

// Get loads location with the default loader
func Get(ctx context.Context, location string) ([]byte, error) {
	return Loader{}.Get(ctx, location)
}

func (l Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading url %q: %w", location, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading url %q: HTTP connection error: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("error loading url %q: HTTP error: %s", location, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error loading url %q: %w", location, err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading file %q: %w", path, err)
	}
	return data, nil
}
