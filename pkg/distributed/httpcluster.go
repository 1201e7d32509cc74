package distributed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// HTTPCluster talks to a cluster's job API over HTTP. Submissions and status
// checks are plain requests; Watch upgrades to a WebSocket event stream.
type HTTPCluster struct {
	endpoint string // base URL, no trailing slash
	token    string // bearer token, empty for unauthenticated clusters
	client   *http.Client
}

// NewHTTPCluster creates a cluster client from a validated config.
func NewHTTPCluster(cfg Config) (*HTTPCluster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &HTTPCluster{
		endpoint: strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/"),
		token:    cfg.Token,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// Submit posts the job to the cluster and decodes its handle.
func (c *HTTPCluster) Submit(ctx context.Context, req JobRequest) (*Job, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("distributed: marshal job request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("distributed: build submit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq.Header)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &ClusterError{Op: "submit", Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, clusterErr("submit", resp)
	}
	return decodeJob(resp.Body)
}

// Status fetches the current snapshot of a submitted job.
func (c *HTTPCluster) Status(ctx context.Context, jobID string) (*Job, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/jobs/"+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("distributed: build status request: %w", err)
	}
	c.authorize(httpReq.Header)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &ClusterError{Op: "status", Message: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, clusterErr("status", resp)
	}
	return decodeJob(resp.Body)
}

// Watch opens the job's event stream and forwards frames until a terminal
// state arrives, the connection drops, or ctx is canceled.
func (c *HTTPCluster) Watch(ctx context.Context, jobID string) (<-chan JobEvent, error) {
	wsURL, err := eventStreamURL(c.endpoint, jobID)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	c.authorize(header)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		cerr := &ClusterError{Op: "watch", Message: err.Error()}
		if resp != nil {
			cerr.Status = resp.StatusCode
		}
		return nil, cerr
	}

	events := make(chan JobEvent)
	go func() {
		defer close(events)
		defer conn.Close()
		stop := context.AfterFunc(ctx, func() { conn.Close() })
		defer stop()
		for {
			var ev JobEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
			if ev.State.Terminal() {
				return
			}
		}
	}()
	return events, nil
}

func (c *HTTPCluster) authorize(h http.Header) {
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
}

func decodeJob(r io.Reader) (*Job, error) {
	var job Job
	if err := json.NewDecoder(r).Decode(&job); err != nil {
		return nil, fmt.Errorf("distributed: decode job: %w", err)
	}
	return &job, nil
}

func clusterErr(op string, resp *http.Response) *ClusterError {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &ClusterError{
		Op:      op,
		Status:  resp.StatusCode,
		Message: strings.TrimSpace(string(detail)),
	}
}

// eventStreamURL rewrites the job API endpoint into the WebSocket address of
// one job's event stream.
func eventStreamURL(endpoint, jobID string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("distributed: parse endpoint: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("distributed: unsupported endpoint scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/jobs/" + url.PathEscape(jobID) + "/events"
	return u.String(), nil
}
