// Package photosync imports photo metadata from Google Photos into the gallery.
//
// The OAuth dance is standard three-legged authorization: the admin is sent
// to Google's consent screen, the callback code is exchanged for a token, and
// the token authorizes paged reads of the media items listing. Only metadata
// is stored; image bytes stay with Google.
package photosync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const (
	authURL       = "https://accounts.google.com/o/oauth2/auth"
	tokenURL      = "https://oauth2.googleapis.com/token"
	readScope     = "https://www.googleapis.com/auth/photoslibrary.readonly"
	mediaItemsURL = "https://photoslibrary.googleapis.com/v1/mediaItems"
)

// Config holds the OAuth client credentials for the Google Photos import.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Client drives the OAuth flow and the media items listing.
type Client struct {
	oauth *oauth2.Config
}

// NewClient creates a photosync client from the given credentials.
func NewClient(cfg Config) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{readScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
	}
}

// AuthURL returns the Google consent URL for the given anti-forgery state.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback authorization code for a token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// MediaItem is the subset of a Google Photos media item the gallery keeps.
type MediaItem struct {
	ID          string `json:"id"`
	BaseURL     string `json:"baseUrl"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
	Metadata    struct {
		CreationTime string `json:"creationTime"`
	} `json:"mediaMetadata"`
}

type mediaItemsPage struct {
	MediaItems    []MediaItem `json:"mediaItems"`
	NextPageToken string      `json:"nextPageToken"`
}

// ListMediaItems pages through the authorized library and returns every media
// item, up to the given cap (0 means no cap).
func (c *Client) ListMediaItems(ctx context.Context, token *oauth2.Token, max int) ([]MediaItem, error) {
	httpClient := c.oauth.Client(ctx, token)

	var items []MediaItem
	pageToken := ""
	for {
		page, err := fetchPage(ctx, httpClient, pageToken)
		if err != nil {
			return nil, err
		}
		items = append(items, page.MediaItems...)
		if max > 0 && len(items) >= max {
			return items[:max], nil
		}
		if page.NextPageToken == "" {
			return items, nil
		}
		pageToken = page.NextPageToken
	}
}

func fetchPage(ctx context.Context, httpClient *http.Client, pageToken string) (*mediaItemsPage, error) {
	url := mediaItemsURL + "?pageSize=100"
	if pageToken != "" {
		url += "&pageToken=" + pageToken
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list media items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list media items: unexpected status %d", resp.StatusCode)
	}

	var page mediaItemsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode media items page: %w", err)
	}
	return &page, nil
}
