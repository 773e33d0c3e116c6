package unsplash

import (
	"context"
	"net/url"
	"strings"
)

const (
	pathSearchPhotos     = "search/photos"
	pathPhoto            = "photos/{id}"
	pathRandomPhoto      = "photos/random"
	pathPhotoDownload    = "photos/{id}/download"
	pathCollections      = "collections"
	pathCollection       = "collections/{id}"
	pathSearchCollection = "search/collections"
	pathUser             = "users/{username}"
	pathUserPhotos       = "users/{username}/photos"

	defaultPerPage = 10
	defaultPage    = 1
)

// SearchPhotos runs a photo search. Zero perPage or page fall back to 10 and 1.
// See: https://unsplash.com/documentation#search-photos
func (c *Client) SearchPhotos(ctx context.Context, query string, perPage, page int) (map[string]any, error) {
	return c.getObject(ctx, pathSearchPhotos, Query(map[string]any{
		"query":    query,
		"per_page": orDefault(perPage, defaultPerPage),
		"page":     orDefault(page, defaultPage),
	}))
}

// SearchPhotosAdvanced runs a photo search with arbitrary query parameters
// (orientation, color, content_filter, ...).
func (c *Client) SearchPhotosAdvanced(ctx context.Context, params map[string]any) (map[string]any, error) {
	return c.getObject(ctx, pathSearchPhotos, Query(params))
}

// GetPhoto fetches a single photo.
func (c *Client) GetPhoto(ctx context.Context, id string) (map[string]any, error) {
	return c.getObject(ctx, withParam(pathPhoto, "{id}", id), nil)
}

// GetRandomPhoto fetches a random photo. With a "count" parameter Unsplash
// answers with a list instead of a single object, so the result is left untyped.
func (c *Client) GetRandomPhoto(ctx context.Context, params map[string]any) (any, error) {
	return c.Get(ctx, pathRandomPhoto, Query(params))
}

// GetPhotoDownloadLink tracks a download and returns the photo's download URL,
// or an empty string if the response has none.
func (c *Client) GetPhotoDownloadLink(ctx context.Context, id string) (string, error) {
	data, err := c.getObject(ctx, withParam(pathPhotoDownload, "{id}", id), nil)
	if err != nil {
		return "", err
	}
	link, _ := data["url"].(string)
	return link, nil
}

func withParam(path, name, value string) string {
	return strings.Replace(path, name, url.PathEscape(value), 1)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (c *Client) getObject(ctx context.Context, path string, opts Options) (map[string]any, error) {
	data, err := c.Get(ctx, path, opts)
	obj, ok := data.(map[string]any)
	if err != nil {
		return obj, err
	}
	if !ok && data != nil {
		return nil, unexpectedShape(path, "object", data)
	}
	return obj, nil
}

func (c *Client) getList(ctx context.Context, path string, opts Options) ([]any, error) {
	data, err := c.Get(ctx, path, opts)
	list, ok := data.([]any)
	if err != nil {
		return list, err
	}
	if !ok && data != nil {
		return nil, unexpectedShape(path, "array", data)
	}
	return list, nil
}
