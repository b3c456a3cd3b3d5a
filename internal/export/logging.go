package export

import (
	"io"

	"github.com/hubscout/hubscout/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Export:", PrefixColor: logging.FgGreen}

// SetLogger enables export logging to w. Pass nil to disable.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) { logger.Logf("", format, args...) }
