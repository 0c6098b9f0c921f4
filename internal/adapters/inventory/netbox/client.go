package netbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	"github.com/olusolaa/netbox-reconciler/internal/errors"
	"github.com/olusolaa/netbox-reconciler/pkg/reflectutil"
)

const (
	defaultTimeout = 30 * time.Second
	apiPathSuffix  = "/api"
	maxListPages   = 10000
)

// Config holds the connection settings of one inventory API instance.
type Config struct {
	URL                string        `mapstructure:"url" validate:"required,url"`
	Token              string        `mapstructure:"token" validate:"required"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"omitempty,min=0"`
	RateLimitRPS       int           `mapstructure:"rate_limit_rps" validate:"omitempty,min=0,max=100"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// Client talks to the REST API of a NetBox instance. It implements
// ports.InventoryClient.
type Client struct {
	base    string
	token   string
	http    *http.Client
	limiter *Limiter
	logger  ports.Logger
}

var _ ports.InventoryClient = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from Config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLimiter(l *Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

func NewClient(cfg Config, logger ports.Logger, opts ...Option) (*Client, error) {
	base, err := apiBase(cfg.URL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"inventory API token is empty",
			"Set the token parameter or NETBOX_TOKEN.")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for lab instances
	}

	c := &Client{
		base:   base,
		token:  cfg.Token,
		http:   &http.Client{Timeout: timeout, Transport: transport},
		logger: logger.WithFields(map[string]any{"component": "netbox_client"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = NewLimiter(cfg.RateLimitRPS, logger)
	}
	return c, nil
}

// apiBase normalizes the instance URL to the API root without a trailing
// slash, appending /api unless it is already there.
func apiBase(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("invalid inventory API url %q", raw),
			"Use the form https://netbox.example.org.")
	}
	u.RawQuery = ""
	u.Fragment = ""
	base := strings.TrimRight(u.String(), "/")
	if !strings.HasSuffix(base, apiPathSuffix) {
		base += apiPathSuffix
	}
	return base, nil
}

func (c *Client) collectionURL(category domain.Category) string {
	return fmt.Sprintf("%s/%s/%s/", c.base, url.PathEscape(category.Model), url.PathEscape(category.Obj))
}

func (c *Client) objectURL(category domain.Category, id int64) string {
	return c.collectionURL(category) + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) Get(ctx context.Context, category domain.Category, ref domain.ObjectRef) (domain.Object, error) {
	switch r := ref.(type) {
	case domain.ByID:
		resp, err := c.send(ctx, http.MethodGet, c.objectURL(category, int64(r)), nil)
		if err != nil {
			return nil, err
		}
		if resp.status == http.StatusNotFound {
			return domain.NotFound(), nil
		}
		return resp.object()
	case domain.ByName:
		return c.getByName(ctx, category, string(r))
	case nil:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("no object reference given for %s", category),
			"Set either name or ident.")
	default:
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("unsupported object reference %T", ref))
	}
}

func (c *Client) getByName(ctx context.Context, category domain.Category, name string) (domain.Object, error) {
	endpoint := c.collectionURL(category) + "?" + url.Values{domain.KeyName: []string{name}}.Encode()
	resp, err := c.send(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return domain.NotFound(), nil
	}
	page, err := resp.page()
	if err != nil {
		return nil, err
	}
	if len(page.results) == 0 {
		return domain.NotFound(), nil
	}
	if len(page.results) > 1 {
		c.logger.Warnf(ctx, "%d %s objects match name %q, using the first", len(page.results), category, name)
	}
	return page.results[0], nil
}

// List returns every object of category, following pagination links.
func (c *Client) List(ctx context.Context, category domain.Category) ([]domain.Object, error) {
	var all []domain.Object
	endpoint := c.collectionURL(category)
	seen := make(map[string]struct{})

	for pages := 0; endpoint != ""; pages++ {
		if _, dup := seen[endpoint]; dup || pages >= maxListPages {
			return nil, errors.New(errors.CodeResponseDecode,
				fmt.Sprintf("pagination of %s does not terminate (at %s)", category, endpoint))
		}
		seen[endpoint] = struct{}{}

		resp, err := c.send(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		if resp.status == http.StatusNotFound {
			return nil, errors.NewUserFacing(errors.CodeResourceNotFound,
				fmt.Sprintf("inventory API has no endpoint for %s", category),
				"Check the model and obj parameters.")
		}
		page, err := resp.page()
		if err != nil {
			return nil, err
		}
		all = append(all, page.results...)
		endpoint = page.next
	}

	c.logger.Debugf(ctx, "Listed %d %s objects", len(all), category)
	if all == nil {
		all = []domain.Object{}
	}
	return all, nil
}

func (c *Client) Create(ctx context.Context, category domain.Category, data domain.Object) (domain.Object, error) {
	resp, err := c.send(ctx, http.MethodPost, c.collectionURL(category), data)
	if err != nil {
		return nil, err
	}
	return resp.object()
}

func (c *Client) Update(ctx context.Context, category domain.Category, ref domain.ObjectRef, data domain.Object) (domain.Object, error) {
	id, missing, err := c.resolveID(ctx, category, ref)
	if err != nil || missing != nil {
		return missing, err
	}
	resp, err := c.send(ctx, http.MethodPut, c.objectURL(category, id), data)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return domain.NotFound(), nil
	}
	return resp.object()
}

func (c *Client) Delete(ctx context.Context, category domain.Category, ref domain.ObjectRef) (domain.Object, error) {
	id, missing, err := c.resolveID(ctx, category, ref)
	if err != nil || missing != nil {
		return missing, err
	}
	resp, err := c.send(ctx, http.MethodDelete, c.objectURL(category, id), nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return domain.NotFound(), nil
	}
	return resp.object()
}

// resolveID turns ref into a numeric identifier. When a name does not match
// any object it returns the not-found sentinel as missing.
func (c *Client) resolveID(ctx context.Context, category domain.Category, ref domain.ObjectRef) (int64, domain.Object, error) {
	switch r := ref.(type) {
	case domain.ByID:
		return int64(r), nil, nil
	case domain.ByName:
		obj, err := c.getByName(ctx, category, string(r))
		if err != nil {
			return 0, nil, err
		}
		if domain.IsNotFound(obj) {
			return 0, obj, nil
		}
		id, ok := reflectutil.ToInt64(obj[domain.KeyID])
		if !ok {
			return 0, nil, errors.New(errors.CodeResponseDecode,
				fmt.Sprintf("%s object %s has no numeric id", category, ref))
		}
		return id, nil, nil
	case nil:
		return 0, nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("no object reference given for %s", category),
			"Set either name or ident.")
	default:
		return 0, nil, errors.New(errors.CodeInternal, fmt.Sprintf("unsupported object reference %T", ref))
	}
}
