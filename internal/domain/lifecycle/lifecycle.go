// Package lifecycle holds process-wide start/stop constants shared by the infra and delivery layers.
package lifecycle

import "time"

// DefaultTimeout bounds fx start/stop hooks such as the database ping and HTTP shutdown.
const DefaultTimeout = 10 * time.Second
