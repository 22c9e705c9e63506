// Package process runs external tools (mmdc, pandoc) so that cancellation
// reaches every process they spawn.
package process

import "time"

// waitDelay bounds how long Wait blocks on pipes after the process is killed.
const waitDelay = 5 * time.Second
