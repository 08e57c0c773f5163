// Package lifecycle holds shared constants for fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown.
const DefaultTimeout = 15 * time.Second
