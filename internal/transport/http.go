// Collector transports: HTTP status/beacon requests and an optional beats mirror
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rumbeacon/internal/commstate"
	"rumbeacon/internal/global"
	"rumbeacon/pkg/protocol"
	"strconv"
	"strings"
	"time"
)

const maxResponseBytes = 64 * 1024

// Creates HTTP client for the collector beacon URL
func NewHTTPClient(namespace []string, endpoint string, timeout time.Duration) (new *HTTPClient, err error) {
	baseURL, err := url.Parse(endpoint)
	if err != nil {
		err = fmt.Errorf("invalid beacon URL: %w", err)
		return
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		err = fmt.Errorf("invalid beacon URL '%s': scheme must be http or https", endpoint)
		return
	}
	if baseURL.Host == "" {
		err = fmt.Errorf("invalid beacon URL '%s': missing host", endpoint)
		return
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	new = &HTTPClient{
		Namespace: append(append([]string(nil), namespace...), global.NSHTTP),
		endpoint:  baseURL,
		sink: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Metrics: &MetricStorage{},
	}
	return
}

// Monitor URL: the beacon URL with the identifying query appended
func (client *HTTPClient) monitorURL(request StatusRequest) (monitor string) {
	query := client.endpoint.Query()
	query.Set("type", protocol.ResponseTypeMonitor)
	query.Set("srvid", strconv.Itoa(request.ServerID))
	query.Set("app", request.ApplicationID)
	query.Set("va", protocol.AgentVersion)
	query.Set("pt", strconv.Itoa(protocol.PlatformType))
	query.Set("tt", protocol.AgentTechnologyType)

	target := *client.endpoint
	target.RawQuery = query.Encode()
	monitor = target.String()
	return
}

func (client *HTTPClient) SendStatusRequest(ctx context.Context, request StatusRequest) (resp commstate.StatusResponse, err error) {
	client.Metrics.StatusRequests.Add(1)
	resp, err = client.do(ctx, http.MethodGet, client.monitorURL(request), "")
	return
}

func (client *HTTPClient) SendBeacon(ctx context.Context, request StatusRequest, body string) (resp commstate.StatusResponse, err error) {
	resp, err = client.do(ctx, http.MethodPost, client.monitorURL(request), body)
	if err == nil {
		client.Metrics.BeaconsSent.Add(1)
		client.Metrics.BytesSent.Add(uint64(len(body)))
	}
	return
}

// Sends one request. Transport failures and busy statuses are errors,
// any other non-success outcome is an invalid response.
func (client *HTTPClient) do(ctx context.Context, method string, target string, body string) (resp commstate.StatusResponse, err error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		err = fmt.Errorf("failed request creation: %w", err)
		return
	}
	if body != "" {
		req.Header.Set("Content-Type", "text/plain; charset=UTF-8")
	}
	req.Header.Set("User-Agent", global.ProgBaseName+"/"+global.ProgVersion)

	httpResp, err := client.sink.Do(req)
	if err != nil {
		client.Metrics.Failures.Add(1)
		err = fmt.Errorf("failed HTTP request: %w", err)
		return
	}
	defer httpResp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		client.Metrics.Failures.Add(1)
		err = fmt.Errorf("failed reading response body: %w", err)
		return
	}

	if httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500 {
		client.Metrics.BusyResponses.Add(1)
		err = fmt.Errorf("received HTTP status '%s': %w", httpResp.Status, ErrServerBusy)
		return
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		client.Metrics.InvalidResponses.Add(1)
		return
	}

	resp = commstate.ParseKeyValueResponse(string(content))
	if !resp.Valid {
		client.Metrics.InvalidResponses.Add(1)
	}
	return
}
