package netbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
)

const maxResponseBytes = 32 << 20

// Numbers are kept as json.Number so identifiers survive untouched.
var codec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type response struct {
	method   string
	endpoint string
	status   int
	body     []byte
}

type listPage struct {
	next    string
	results []domain.Object
}

// send issues one request and returns the raw answer. Only transport,
// authentication and server failures are errors; any other status is left to
// the caller to interpret.
func (c *Client) send(ctx context.Context, method, endpoint string, body any) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, handleTransportError(ctx, method, endpoint, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := codec.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal,
				fmt.Sprintf("failed to encode request body for %s %s", method, endpoint))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal,
			fmt.Sprintf("failed to build request %s %s", method, endpoint))
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugf(ctx, "%s %s", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, handleTransportError(ctx, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, handleTransportError(ctx, method, endpoint, err)
	}
	if err := statusError(method, endpoint, resp.StatusCode, raw); err != nil {
		return nil, err
	}
	c.logger.Debugf(ctx, "%s %s -> %d (%d bytes)", method, endpoint, resp.StatusCode, len(raw))

	return &response{method: method, endpoint: endpoint, status: resp.StatusCode, body: raw}, nil
}

// object decodes the answer as a single mapping. An empty body, as sent for
// a successful delete, yields an empty object.
func (r *response) object() (domain.Object, error) {
	if len(bytes.TrimSpace(r.body)) == 0 {
		if r.status == http.StatusNotFound {
			return domain.NotFound(), nil
		}
		return domain.Object{}, nil
	}
	var obj map[string]any
	if err := codec.Unmarshal(r.body, &obj); err != nil {
		return nil, r.decodeError(err)
	}
	if obj == nil {
		return domain.Object{}, nil
	}
	return domain.Object(obj), nil
}

// page decodes a list answer. Both the paginated envelope and a bare array
// are accepted.
func (r *response) page() (listPage, error) {
	var raw any
	if err := codec.Unmarshal(r.body, &raw); err != nil {
		return listPage{}, r.decodeError(err)
	}

	switch v := raw.(type) {
	case []any:
		results, err := r.objects(v)
		return listPage{results: results}, err
	case map[string]any:
		if _, ok := v[domain.KeyResults]; !ok {
			return listPage{}, r.decodeError(fmt.Errorf("HTTP %d: %s", r.status, summarizeBody(r.body)))
		}
		items, ok := v[domain.KeyResults].([]any)
		if !ok && v[domain.KeyResults] != nil {
			return listPage{}, r.decodeError(fmt.Errorf("%q is %T, not a list", domain.KeyResults, v[domain.KeyResults]))
		}
		results, err := r.objects(items)
		if err != nil {
			return listPage{}, err
		}
		next, _ := v[domain.KeyNext].(string)
		return listPage{next: next, results: results}, nil
	default:
		return listPage{}, r.decodeError(fmt.Errorf("unexpected JSON %T", raw))
	}
}

func (r *response) objects(items []any) ([]domain.Object, error) {
	out := make([]domain.Object, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, r.decodeError(fmt.Errorf("result %d is %T, not an object", i, item))
		}
		out = append(out, domain.Object(m))
	}
	return out, nil
}

func (r *response) decodeError(err error) error {
	return errors.Wrap(err, errors.CodeResponseDecode,
		fmt.Sprintf("failed to decode response of %s %s (HTTP %d)", r.method, r.endpoint, r.status))
}
