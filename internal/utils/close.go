package utils

import (
	"io"

	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
)

// maxDrain caps how much of an unread response body is discarded before close.
const maxDrain = 64 << 10

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseLogged closes c and logs any error under name.
func CloseLogged(c io.Closer, log logger.Logger, name string) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("what", name), logger.Error(err))
	}
}

// DrainClose discards what is left of an HTTP body so the connection can be
// reused, then closes it.
func DrainClose(body io.ReadCloser, log logger.Logger) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrain))
	CloseLogged(body, log, "response body")
}
