package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fwojciec/worldart"
)

// Ensure Downloader implements worldart.ImageDownloader.
var _ worldart.ImageDownloader = (*Downloader)(nil)

// Downloader fetches remote images and saves them to an ImageStore.
type Downloader struct {
	client    *http.Client
	userAgent string
	store     worldart.ImageStore
}

// NewDownloader creates a Downloader saving into store. A nil client uses
// a client with DefaultFetchTimeout.
func NewDownloader(client *http.Client, store worldart.ImageStore) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &Downloader{
		client:    client,
		userAgent: DefaultUserAgent,
		store:     store,
	}
}

// Store downloads remoteURL and saves it under key. An image already in
// the store is not downloaded again.
func (d *Downloader) Store(ctx context.Context, remoteURL, key string) (string, error) {
	exists, err := d.store.HasImage(key)
	if err != nil {
		return "", err
	}
	if exists {
		return key, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", worldart.Errorf(worldart.ENOTFOUND, "image %s: HTTP %d", remoteURL, resp.StatusCode)
	}

	ref, err := d.store.SaveImage(key, resp.Body)
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", key, err)
	}
	return ref, nil
}
