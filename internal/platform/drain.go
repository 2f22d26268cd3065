package platform

import (
	"context"
	"net/http"
	"time"
)

// DefaultDrainTimeout bounds how long in-flight requests may run after a
// shutdown signal
const DefaultDrainTimeout = 30 * time.Second

// Drain shuts server down, giving outstanding requests up to timeout
func Drain(server *http.Server, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultDrainTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(ctx)
}
