package hooklog

import (
	"strings"
	"time"

	"github.com/marcelsud/webhook-relay/relay/render"
)

// PreviewLimit bounds the raw payload excerpt carried on a record
const PreviewLimit = 500

/* Record is one entry in the append-only ingestion log
 * Once written it is never mutated or deleted by the running system;
 * retention of old segments is an operational concern
 */
type Record struct {
	ChannelID      string
	ReceivedAt     time.Time
	Format         render.Format
	Outcome        Outcome
	Reason         string
	RenderedText   string
	PayloadPreview string
	Headers        map[string]string
}

/* Preview produces the size-bounded payload excerpt stored on a
 * record, with invalid UTF-8 replaced so the log stays parsable
 */
func Preview(raw []byte) string {
	s := strings.ToValidUTF8(string(raw), "�")
	if len(s) > PreviewLimit {
		return s[:PreviewLimit]
	}
	return s
}

/* FilterHeaders keeps only the vendor and content headers worth
 * auditing (x-* and content-*), dropping the rest
 */
func FilterHeaders(headers map[string]string) map[string]string {
	kept := make(map[string]string)
	for k, v := range headers {
		lower := strings.ToLower(k)
		if strings.HasPrefix(lower, "x-") || strings.HasPrefix(lower, "content-") {
			kept[k] = v
		}
	}
	return kept
}
