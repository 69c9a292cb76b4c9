package hooklog

import "context"

// Appender provides write access to the ingestion log
type Appender interface {
	/* Append adds one record to the current day's segment.
	 * Appends are atomic per record so concurrent handlers never
	 * interleave partial lines.
	 */
	Append(ctx context.Context, rec Record) error
}

// Reader provides read access to the ingestion log
type Reader interface {
	// Recent returns up to limit records, newest first, spanning day segments
	Recent(ctx context.Context, limit int) ([]Record, error)
}

type Repository interface {
	Appender
	Reader
}
