package unsplash

import "context"

// ListCollections lists collections page by page.
// See: https://unsplash.com/documentation#list-collections
func (c *Client) ListCollections(ctx context.Context, perPage, page int) ([]any, error) {
	return c.getList(ctx, pathCollections, Query(map[string]any{
		"per_page": orDefault(perPage, defaultPerPage),
		"page":     orDefault(page, defaultPage),
	}))
}

// GetCollection fetches a single collection.
func (c *Client) GetCollection(ctx context.Context, id string) (map[string]any, error) {
	return c.getObject(ctx, withParam(pathCollection, "{id}", id), nil)
}

// SearchCollections runs a collection search.
func (c *Client) SearchCollections(ctx context.Context, query string, perPage, page int) (map[string]any, error) {
	return c.getObject(ctx, pathSearchCollection, Query(map[string]any{
		"query":    query,
		"per_page": orDefault(perPage, defaultPerPage),
		"page":     orDefault(page, defaultPage),
	}))
}
