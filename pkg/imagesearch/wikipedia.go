package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Finder resolves a character name to an image URL.
type Finder interface {
	FindImageURL(ctx context.Context, name string) (string, error)
}

// WikipediaFinder reads the thumbnail from the REST page summary endpoint.
type WikipediaFinder struct {
	BaseURL string
	Client  *http.Client
	cache   *cache.Cache
}

var _ Finder = &WikipediaFinder{}

func NewWikipediaFinder(baseURL string, timeout time.Duration) *WikipediaFinder {
	return &WikipediaFinder{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		cache:   cache.New(24*time.Hour, time.Hour),
	}
}

type pageSummary struct {
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage *struct {
		Source string `json:"source"`
	} `json:"originalimage"`
}

func (w *WikipediaFinder) FindImageURL(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if x, found := w.cache.Get(name); found {
		return x.(string), nil
	}

	title := url.PathEscape(strings.ReplaceAll(name, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"/page/summary/"+title, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		w.cache.SetDefault(name, "")
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia error: status %d", resp.StatusCode)
	}

	var summary pageSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}

	var imageURL string
	switch {
	case summary.Thumbnail != nil:
		imageURL = summary.Thumbnail.Source
	case summary.OriginalImage != nil:
		imageURL = summary.OriginalImage.Source
	}
	w.cache.SetDefault(name, imageURL)
	return imageURL, nil
}
