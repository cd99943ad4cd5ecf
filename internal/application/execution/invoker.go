package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apitest/backend/internal/domain/spec"
	"github.com/apitest/backend/internal/domain/testcase"
)

// requestTimeout bounds every outbound case request. There is no retry
// and no backoff; a slow target surfaces as a transport error.
const requestTimeout = 10 * time.Second

// Outcome is the observable result of one case invocation
type Outcome struct {
	StatusCode int
	Body       string
	Headers    http.Header
	Elapsed    time.Duration
}

// Invoker builds and sends the HTTP request of a single test case
type Invoker struct {
	client *http.Client
}

// NewInvoker creates an invoker with the fixed request timeout
func NewInvoker() *Invoker {
	return &Invoker{client: &http.Client{Timeout: requestTimeout}}
}

// NewInvokerWithClient allows tests to inject a client
func NewInvokerWithClient(client *http.Client) *Invoker {
	return &Invoker{client: client}
}

// Invoke executes one case against the environment base URL. The full
// URL is envURL + interface URL with {param} placeholders substituted
// from the case's request parameters; substituted parameters do not
// reappear in the query string or body. GET sends the remaining
// parameters as query values, every other method as a JSON body.
// Malformed stored case data is returned as an error so the dispatcher
// records an ERROR result instead of sending an empty request.
func (inv *Invoker) Invoke(ctx context.Context, envURL string, iface *spec.Interface, tc *testcase.TestCase) (*Outcome, error) {
	params, err := tc.ParamMap()
	if err != nil {
		return nil, err
	}
	headers, err := tc.HeaderMap()
	if err != nil {
		return nil, err
	}

	fullURL, remaining := substitutePath(strings.TrimRight(envURL, "/")+iface.URL, params)

	var body io.Reader
	if iface.Method == spec.MethodGet {
		if len(remaining) > 0 {
			values := url.Values{}
			for k, v := range remaining {
				values.Set(k, v)
			}
			fullURL += "?" + values.Encode()
		}
	} else {
		raw, err := json.Marshal(remaining)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, string(iface.Method), fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if iface.Method != spec.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range iface.DefaultHeaderMap() {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := inv.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("request failed after %s: %w", elapsed.Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &Outcome{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
		Headers:    resp.Header,
		Elapsed:    elapsed,
	}, nil
}

// substitutePath replaces {param} placeholders from the parameter map
// and returns the remaining parameters that were not consumed by the
// path.
func substitutePath(urlTemplate string, params map[string]string) (string, map[string]string) {
	remaining := make(map[string]string, len(params))
	for k, v := range params {
		remaining[k] = v
	}
	for k, v := range params {
		placeholder := "{" + k + "}"
		if strings.Contains(urlTemplate, placeholder) {
			urlTemplate = strings.ReplaceAll(urlTemplate, placeholder, url.PathEscape(v))
			delete(remaining, k)
		}
	}
	return urlTemplate, remaining
}
