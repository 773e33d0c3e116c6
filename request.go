package unsplash

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// Method is one of the HTTP methods the client knows how to send.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

// Option keys understood by the client.
const (
	// OptQuery holds a map of query parameters.
	OptQuery = "query"
	// OptHeaders holds a map of request headers. A list value sends the header several times.
	OptHeaders = "headers"
	// OptJSON holds a value that is encoded as the JSON request body.
	OptJSON = "json"
	// OptBody holds a raw request body: string, []byte or io.Reader.
	OptBody = "body"
)

// Options are per-call transport options, keyed by the Opt* constants.
type Options map[string]any

// Query returns Options carrying only query parameters.
func Query(params map[string]any) Options {
	return Options{OptQuery: params}
}

// Headers returns Options carrying only request headers.
func Headers(headers map[string]any) Options {
	return Options{OptHeaders: headers}
}

// MergeOptions merges b into a recursively and returns a new value; neither
// argument is modified.
//
// Keys present on one side only are copied. When both sides hold a map the
// maps are merged recursively. In every other conflict both values are kept:
// lists are concatenated and scalars are folded into a list, a's value first.
// Merging {"query": {"page": 1}} with {"query": {"page": 2}} therefore yields
// {"query": {"page": [1, 2]}}, which is sent as page=1&page=2.
func MergeOptions(a, b Options) Options {
	if len(a) == 0 && len(b) == 0 {
		return Options{}
	}
	return Options(mergeMaps(a, b))
}

func mergeMaps(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	for k, bv := range b {
		av, ok := out[k]
		if !ok {
			out[k] = cloneValue(bv)
			continue
		}
		out[k] = mergeValues(av, bv)
	}
	return out
}

func mergeValues(a, b any) any {
	am, aIsMap := asMap(a)
	bm, bIsMap := asMap(b)
	if aIsMap && bIsMap {
		return mergeMaps(am, bm)
	}
	return append(asList(a), asList(b)...)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asList(v any) []any {
	switch l := v.(type) {
	case []any:
		return append([]any(nil), l...)
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	}
	return []any{cloneValue(v)}
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return mergeMaps(m, nil)
	}
	switch l := v.(type) {
	case []any, []string:
		return asList(l)
	}
	return v
}

// newRequest builds the HTTP request for one call from the merged options.
func (c *Client) newRequest(ctx context.Context, method Method, path string, opts Options) (*http.Request, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	endpoint := c.baseURL.ResolveReference(rel)

	if q, ok := opts[OptQuery]; ok && q != nil {
		params, ok := asMap(q)
		if !ok {
			return nil, fmt.Errorf("option %q must be a map, got %T", OptQuery, q)
		}
		values := endpoint.Query()
		encodeQuery(values, params)
		endpoint.RawQuery = values.Encode()
	}

	body, contentType, err := requestBody(opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, string(method), endpoint.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if h, ok := opts[OptHeaders]; ok && h != nil {
		headers, ok := asMap(h)
		if !ok {
			return nil, fmt.Errorf("option %q must be a map, got %T", OptHeaders, h)
		}
		for name, value := range headers {
			req.Header.Del(name)
			for _, v := range asList(value) {
				req.Header.Add(name, scalarString(v))
			}
		}
	}

	return req, nil
}

func requestBody(opts Options) (io.Reader, string, error) {
	if v, ok := opts[OptJSON]; ok && v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}

	switch b := opts[OptBody].(type) {
	case nil:
		return nil, "", nil
	case string:
		return bytes.NewBufferString(b), "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	default:
		return nil, "", fmt.Errorf("option %q must be string, []byte or io.Reader, got %T", OptBody, b)
	}
}

// encodeQuery adds params to values. Lists repeat the key and nested maps use
// key[sub] names.
func encodeQuery(values url.Values, params map[string]any) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		addQueryValue(values, k, params[k])
	}
}

func addQueryValue(values url.Values, key string, v any) {
	if v == nil {
		return
	}
	if m, ok := asMap(v); ok {
		nested := url.Values{}
		encodeQuery(nested, m)
		for sub, vs := range nested {
			for _, s := range vs {
				values.Add(key+"["+sub+"]", s)
			}
		}
		return
	}
	switch v.(type) {
	case []any, []string:
		for _, item := range asList(v) {
			addQueryValue(values, key, item)
		}
		return
	}
	values.Add(key, scalarString(v))
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
