// Package core owns the authenticated HTTP session every other
// scraper package goes through: cookie auth, pacing between requests
// and retry on transient failures.
package core

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"ljexport/lib/telemetry"
	"ljexport/lib/util/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/lj/core")

const DefaultBaseUrl = "https://www.livejournal.com"

type Client struct {
	BaseUrl  *url.URL
	Http     *resty.Client
	Username string

	pace *pacer
}

type ClientOptions struct {
	Username string
	// BaseUrl defaults to the public site; tests point it elsewhere.
	BaseUrl string
	// RequestDelay is the minimum gap between requests. Zero keeps
	// the default of one second; negative disables pacing.
	RequestDelay time.Duration
	// RetryAttempts is the total number of tries per request
	// including the first. Zero keeps the default of three.
	RetryAttempts int
	// UserAgent overrides the default browser user agent.
	UserAgent string
	// Timeout bounds each request. Zero keeps the default of
	// thirty seconds.
	Timeout time.Duration
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.RequestDelay == 0 {
		opts.RequestDelay = time.Second
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", opts.UserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname(), "livejournal.com"))
	client.SetTimeout(opts.Timeout)

	client.SetRetryCount(opts.RetryAttempts - 1)
	client.SetRetryWaitTime(time.Second)
	client.SetRetryMaxWaitTime(time.Second * 10)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return err != nil || !res.IsSuccess()
	})

	pace := newPacer(opts.RequestDelay)
	client.OnBeforeRequest(func(_ *resty.Client, _ *resty.Request) error {
		pace.wait()
		return nil
	})

	telemetry.InstrumentResty(client, "scrapers/lj/http")
	restyutil.RecordExchanges(client, debugOutput)

	c := &Client{
		BaseUrl:  baseUrl,
		Http:     client,
		Username: opts.Username,
		pace:     pace,
	}
	return c, nil
}

// Get fetches path (with optional query params) and fails on any
// non-2xx status left after retries.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (*resty.Response, error) {
	req := c.Http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}
	res, err := req.Get(path)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("request to %s failed: %v", path, err)}
	}
	if !res.IsSuccess() {
		return nil, &APIError{
			StatusCode: res.StatusCode(),
			Message:    fmt.Sprintf("request to %s failed", path),
		}
	}
	return res, nil
}

// PostForm submits a form to path and fails on any non-2xx status
// left after retries.
func (c *Client) PostForm(ctx context.Context, path string, form map[string]string) (*resty.Response, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(path)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("request to %s failed: %v", path, err)}
	}
	if !res.IsSuccess() {
		return nil, &APIError{
			StatusCode: res.StatusCode(),
			Message:    fmt.Sprintf("request to %s failed", path),
		}
	}
	return res, nil
}

func (c *Client) hasCookie(name string) bool {
	for _, cookie := range c.Http.GetClient().Jar.Cookies(c.BaseUrl) {
		if cookie.Name == name && cookie.Value != "" {
			return true
		}
	}
	return false
}

// Login runs the cookie handshake: load the front page and require
// the luid cookie it grants, then submit the login form and check
// that the server granted the two session cookies.
func (c *Client) Login(ctx context.Context, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	_, err := c.Get(ctx, "/", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch front page")
		return err
	}
	if !c.hasCookie("luid") {
		err := &AuthenticationError{
			Message: "Failed to acquire luid cookie",
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = c.PostForm(ctx, "/login.bml", map[string]string{
		"user":     c.Username,
		"password": password,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit login form")
		return err
	}

	if !c.hasCookie("ljloggedin") || !c.hasCookie("ljmastersession") {
		err := &AuthenticationError{
			Message: "Login failed, check your username and password",
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ValidateSession probes an authenticated page and reports whether
// the session cookies still work.
func (c *Client) ValidateSession(ctx context.Context) bool {
	ctx, span := tracer.Start(ctx, "client:ValidateSession")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/inbox/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch inbox")
		return false
	}
	return res.StatusCode() == 200
}
