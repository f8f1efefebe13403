package index

import "errors"

// ErrNotAProject means the configuration file was absent from the
// path listing. It is not necessarily fatal: callers use it to decide
// whether to offer project initialization instead of a board.
var ErrNotAProject = errors.New("not a tablero project: tablero/config.yml not found")
