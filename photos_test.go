package unsplash

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints_Paths(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		call      func(c *Client) error
		expectUrl string
	}{
		{
			name: "search photos",
			body: `{"total":1,"results":[{"id":"a"}]}`,
			call: func(c *Client) error {
				_, err := c.SearchPhotos(context.Background(), "cats", 0, 0)
				return err
			},
			expectUrl: "https://api.unsplash.com/search/photos?page=1&per_page=10&query=cats",
		},
		{
			name: "search photos advanced",
			body: `{"total":0,"results":[]}`,
			call: func(c *Client) error {
				_, err := c.SearchPhotosAdvanced(context.Background(), map[string]any{"query": "sea", "orientation": "portrait"})
				return err
			},
			expectUrl: "https://api.unsplash.com/search/photos?orientation=portrait&query=sea",
		},
		{
			name: "get photo",
			body: `{"id":"Dwu85P9SOIk"}`,
			call: func(c *Client) error {
				_, err := c.GetPhoto(context.Background(), "Dwu85P9SOIk")
				return err
			},
			expectUrl: "https://api.unsplash.com/photos/Dwu85P9SOIk",
		},
		{
			name: "get photo escapes id",
			body: `{}`,
			call: func(c *Client) error {
				_, err := c.GetPhoto(context.Background(), "a/b")
				return err
			},
			expectUrl: "https://api.unsplash.com/photos/a%2Fb",
		},
		{
			name: "random photo",
			body: `[{"id":"a"},{"id":"b"}]`,
			call: func(c *Client) error {
				_, err := c.GetRandomPhoto(context.Background(), map[string]any{"count": 2})
				return err
			},
			expectUrl: "https://api.unsplash.com/photos/random?count=2",
		},
		{
			name: "download link",
			body: `{"url":"https://images.unsplash.com/x"}`,
			call: func(c *Client) error {
				_, err := c.GetPhotoDownloadLink(context.Background(), "x")
				return err
			},
			expectUrl: "https://api.unsplash.com/photos/x/download",
		},
		{
			name: "list collections",
			body: `[]`,
			call: func(c *Client) error {
				_, err := c.ListCollections(context.Background(), 5, 2)
				return err
			},
			expectUrl: "https://api.unsplash.com/collections?page=2&per_page=5",
		},
		{
			name: "get collection",
			body: `{"id":"206"}`,
			call: func(c *Client) error {
				_, err := c.GetCollection(context.Background(), "206")
				return err
			},
			expectUrl: "https://api.unsplash.com/collections/206",
		},
		{
			name: "search collections",
			body: `{"total":0,"results":[]}`,
			call: func(c *Client) error {
				_, err := c.SearchCollections(context.Background(), "office", 20, 3)
				return err
			},
			expectUrl: "https://api.unsplash.com/search/collections?page=3&per_page=20&query=office",
		},
		{
			name: "get user",
			body: `{"username":"jimmy"}`,
			call: func(c *Client) error {
				_, err := c.GetUser(context.Background(), "jimmy")
				return err
			},
			expectUrl: "https://api.unsplash.com/users/jimmy",
		},
		{
			name: "get user photos",
			body: `[{"id":"a"}]`,
			call: func(c *Client) error {
				_, err := c.GetUserPhotos(context.Background(), "jimmy", 0, 4)
				return err
			},
			expectUrl: "https://api.unsplash.com/users/jimmy/photos?page=4&per_page=10",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c, tr := newTestClient(t, testResponse{code: 200, body: tt.body})

			require.NoError(t, tt.call(c))

			req := tr.last()
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, tt.expectUrl, req.URL.String())
		})
	}
}

func TestGetPhotoDownloadLink(t *testing.T) {
	c, _ := newTestClient(t,
		testResponse{code: 200, body: `{"url":"https://images.unsplash.com/photo-1"}`},
		testResponse{code: 200, body: `{}`},
		testResponse{code: 404, body: `{"errors":["Not found"]}`},
	)
	ctx := context.Background()

	link, err := c.GetPhotoDownloadLink(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "https://images.unsplash.com/photo-1", link)

	link, err = c.GetPhotoDownloadLink(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, link)

	link, err = c.GetPhotoDownloadLink(ctx, "3")
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Empty(t, link)
}

func TestSearchPhotos_Result(t *testing.T) {
	c, _ := newTestClient(t, testResponse{code: 200, body: `{"total":133,"total_pages":7,"results":[{"id":"eOLpJytrbsQ"}]}`})

	res, err := c.SearchPhotos(context.Background(), "minimal", 1, 1)
	require.NoError(t, err)

	assert.EqualValues(t, 133, res["total"])
	results, ok := res["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestGetObject_UnexpectedShape(t *testing.T) {
	c, _ := newTestClient(t,
		testResponse{code: 200, body: `[1,2]`},
		testResponse{code: 200, body: `{"a":1}`},
	)

	_, err := c.GetPhoto(context.Background(), "a")
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, TypeUnexpected, apiErr.Type)

	_, err = c.ListCollections(context.Background(), 1, 1)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, TypeUnexpected, apiErr.Type)
}

func TestGetObject_HTTPErrorReturnsBody(t *testing.T) {
	c, _ := newTestClient(t, testResponse{code: 401, body: `{"errors":["OAuth error: The access token is invalid"]}`})

	res, err := c.GetUser(context.Background(), "jimmy")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Contains(t, res, "errors")
}
