package board

import (
	"github.com/tablerohq/tablero/internal/index"
)

// ErrNotAProject is surfaced when the store has no configuration
// file. Callers typically respond by offering initialization (the
// CLI's `init` command) rather than treating it as fatal.
var ErrNotAProject = index.ErrNotAProject
