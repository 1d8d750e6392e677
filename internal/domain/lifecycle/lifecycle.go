// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown operations (DB ping, server
// shutdown drain).
const DefaultTimeout = 10 * time.Second
