package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/repository"
)

const contentURLFormat = "https://books.google.com/books/content?id=%s&printsec=frontcover&img=1&zoom=0&edge=curl&source=gbs_api"

// coverSizes is ordered from highest to lowest resolution.
var coverSizes = []string{"extraLarge", "large", "medium", "thumbnail", "smallThumbnail"}

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string            `json:"title"`
			Authors     []string          `json:"authors"`
			PageCount   *int              `json:"pageCount"`
			Categories  []string          `json:"categories"`
			PreviewLink string            `json:"previewLink"`
			ImageLinks  map[string]string `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Client implements repository.MetadataRepository against the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new Google Books client. baseURL is the volumes endpoint.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// Search returns the first volume matching query.
func (c *Client) Search(ctx context.Context, query string) (*entity.BookMetadata, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_BOOKS_API_KEY is not set", repository.ErrMetadataUnavailable)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMetadataUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status code %d", repository.ErrMetadataUnavailable, resp.StatusCode)
	}

	var data volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode volumes: %v", repository.ErrMetadataUnavailable, err)
	}
	if len(data.Items) == 0 {
		return nil, repository.ErrBookNotFound
	}

	item := data.Items[0]
	info := item.VolumeInfo

	meta := &entity.BookMetadata{
		VolumeID:    item.ID,
		Title:       info.Title,
		Authors:     info.Authors,
		PageCount:   info.PageCount,
		Categories:  info.Categories,
		PreviewLink: info.PreviewLink,
		Thumbnail:   HighResCover(info.ImageLinks),
	}
	if meta.Title == "" {
		meta.Title = "Unknown Title"
	}
	if meta.Authors == nil {
		meta.Authors = []string{}
	}
	if meta.Categories == nil {
		meta.Categories = []string{}
	}
	if meta.Thumbnail == "" && item.ID != "" {
		meta.Thumbnail = fmt.Sprintf(contentURLFormat, url.QueryEscape(item.ID))
	}
	meta.Thumbnail = strings.ReplaceAll(meta.Thumbnail, "&zoom=1", "&zoom=0")

	return meta, nil
}

// HighResCover picks the largest available cover and asks for it unzoomed and without the page curl.
func HighResCover(links map[string]string) string {
	for _, size := range coverSizes {
		if link, ok := links[size]; ok && link != "" {
			link = strings.ReplaceAll(link, "&edge=curl", "")
			return strings.ReplaceAll(link, "&zoom=1", "&zoom=0")
		}
	}
	return ""
}
