package fetcher

import (
	"io"

	"github.com/hubscout/hubscout/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Search:", PrefixColor: logging.FgCyan}

// httpLogger traces individual requests. Separate from the search logger so
// it can stay off below debug level.
var httpLogger = &logging.Logger{PrefixText: "HTTP:", PrefixColor: logging.FgMagenta}

// SetLogger sets an optional destination for search lifecycle logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

// SetHTTPLogger sets an optional destination for request-level logs.
func SetHTTPLogger(w io.Writer) { httpLogger.SetWriter(w) }

func logf(modelID string, format string, args ...any) {
	logger.Logf(modelID, format, args...)
}

func httpLogf(format string, args ...any) {
	httpLogger.Logf("", format, args...)
}
