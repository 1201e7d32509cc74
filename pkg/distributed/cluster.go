// Package distributed submits work to the platform's remote execution
// service and reports on it. The service is opaque from here: this package
// validates, marshals and forwards, it never executes anything itself.
package distributed

import (
	"context"
	"fmt"
)

// Cluster is a handle to a remote execution service.
type Cluster interface {
	// Submit hands a marshalled job to the cluster and returns its handle.
	Submit(ctx context.Context, req JobRequest) (*Job, error)

	// Status fetches the current snapshot of a submitted job.
	Status(ctx context.Context, jobID string) (*Job, error)

	// Watch streams progress events for a job until it reaches a terminal
	// state, the stream ends, or ctx is canceled. The returned channel is
	// closed when the stream stops.
	Watch(ctx context.Context, jobID string) (<-chan JobEvent, error)
}

// ClusterError is a failure reported while talking to the cluster API.
type ClusterError struct {
	Op      string // operation that failed: "submit", "status" or "watch"
	Status  int    // HTTP status code, 0 when the request never completed
	Message string // response body or transport error detail
}

// Error formats the failure with its operation and status code.
func (e *ClusterError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("distributed: %s failed with status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("distributed: %s failed: %s", e.Op, e.Message)
}
