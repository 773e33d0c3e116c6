package unsplash

import "context"

// GetUser fetches a user's public profile.
// See: https://unsplash.com/documentation#users
func (c *Client) GetUser(ctx context.Context, username string) (map[string]any, error) {
	return c.getObject(ctx, withParam(pathUser, "{username}", username), nil)
}

// GetUserPhotos lists photos uploaded by a user.
func (c *Client) GetUserPhotos(ctx context.Context, username string, perPage, page int) ([]any, error) {
	return c.getList(ctx, withParam(pathUserPhotos, "{username}", username), Query(map[string]any{
		"per_page": orDefault(perPage, defaultPerPage),
		"page":     orDefault(page, defaultPage),
	}))
}
