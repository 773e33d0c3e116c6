package unsplash

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOptions(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   Options
		expect Options
	}{
		{
			name:   "both empty",
			expect: Options{},
		},
		{
			name:   "disjoint query keys",
			a:      Query(map[string]any{"query": "cats"}),
			b:      Query(map[string]any{"foo": 1}),
			expect: Options{OptQuery: map[string]any{"query": "cats", "foo": 1}},
		},
		{
			name:   "conflicting scalars fold into a list",
			a:      Query(map[string]any{"page": 1}),
			b:      Query(map[string]any{"page": 2}),
			expect: Options{OptQuery: map[string]any{"page": []any{1, 2}}},
		},
		{
			name:   "list and scalar",
			a:      Query(map[string]any{"tag": []any{"a", "b"}}),
			b:      Query(map[string]any{"tag": "c"}),
			expect: Options{OptQuery: map[string]any{"tag": []any{"a", "b", "c"}}},
		},
		{
			name: "headers maps are combined",
			a:    Headers(map[string]any{"Accept-Language": "de"}),
			b:    Headers(map[string]any{"X-Trace": "1"}),
			expect: Options{OptHeaders: map[string]any{
				"Accept-Language": "de",
				"X-Trace":         "1",
			}},
		},
		{
			name:   "string maps are treated as maps",
			a:      Options{OptHeaders: map[string]string{"A": "1"}},
			b:      Options{OptHeaders: map[string]any{"B": "2"}},
			expect: Options{OptHeaders: map[string]any{"A": "1", "B": "2"}},
		},
		{
			name: "different top level keys",
			a:    Query(map[string]any{"query": "cats"}),
			b:    Headers(map[string]any{"X-Trace": "1"}),
			expect: Options{
				OptQuery:   map[string]any{"query": "cats"},
				OptHeaders: map[string]any{"X-Trace": "1"},
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, MergeOptions(tt.a, tt.b))
		})
	}
}

func TestMergeOptions_DoesNotMutateInputs(t *testing.T) {
	a := Query(map[string]any{"page": 1, "tags": []any{"x"}})
	b := Query(map[string]any{"page": 2, "tags": []any{"y"}})

	merged := MergeOptions(a, b)
	merged[OptQuery].(map[string]any)["extra"] = true

	assert.Equal(t, Query(map[string]any{"page": 1, "tags": []any{"x"}}), a)
	assert.Equal(t, Query(map[string]any{"page": 2, "tags": []any{"y"}}), b)
}

func TestEncodeQuery(t *testing.T) {
	values := url.Values{}
	encodeQuery(values, map[string]any{
		"query":    "red car",
		"per_page": 30,
		"page":     []any{1, 2},
		"featured": true,
		"skip":     nil,
		"filter":   map[string]any{"color": "red"},
	})

	assert.Equal(t, "red car", values.Get("query"))
	assert.Equal(t, "30", values.Get("per_page"))
	assert.Equal(t, []string{"1", "2"}, values["page"])
	assert.Equal(t, "true", values.Get("featured"))
	assert.NotContains(t, values, "skip")
	assert.Equal(t, "red", values.Get("filter[color]"))
}

func TestNewRequest_InvalidOptions(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.newRequest(ctx, MethodGet, "photos", Options{OptQuery: "page=1"})
	assert.Error(t, err)

	_, err = c.newRequest(ctx, MethodGet, "photos", Options{OptHeaders: []string{"X"}})
	assert.Error(t, err)

	_, err = c.newRequest(ctx, MethodPost, "photos", Options{OptBody: 42})
	assert.Error(t, err)
}

func TestNewRequest_PathQueryIsKept(t *testing.T) {
	c, _ := newTestClient(t)

	req, err := c.newRequest(context.Background(), MethodGet, "photos?order_by=latest", Query(map[string]any{"page": 2}))
	require.NoError(t, err)

	assert.Equal(t, "/photos", req.URL.Path)
	assert.Equal(t, "latest", req.URL.Query().Get("order_by"))
	assert.Equal(t, "2", req.URL.Query().Get("page"))
}

func TestNewRequest_RawBody(t *testing.T) {
	c, _ := newTestClient(t)

	req, err := c.newRequest(context.Background(), MethodPut, "collections/1", Options{OptBody: strings.NewReader("title=x")})
	require.NoError(t, err)
	assert.NotNil(t, req.Body)
	assert.Empty(t, req.Header.Get("Content-Type"))
}

func TestNewRequest_HeaderListAndOverride(t *testing.T) {
	c, _ := newTestClient(t)

	req, err := c.newRequest(context.Background(), MethodGet, "photos", Headers(map[string]any{
		"Accept-Version": "v2",
		"X-Tag":          []any{"a", "b"},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"v2"}, req.Header.Values("Accept-Version"))
	assert.Equal(t, []string{"a", "b"}, req.Header.Values("X-Tag"))
	assert.Equal(t, "Client-ID "+testAccessKey, req.Header.Get("Authorization"))
}

func TestMethod_Valid(t *testing.T) {
	for _, m := range []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete} {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, Method("get").Valid())
	assert.False(t, Method("OPTIONS").Valid())
}
