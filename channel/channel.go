package channel

import "time"

/* Channel represents a named webhook intake endpoint
 * Uses value semantics as it represents data, not behavior
 */
type Channel struct {
	ID             string
	Name           string
	Secret         string
	TelegramChatID string
	CreatedAt      time.Time
}

/* HasSecret reports whether deliveries to this channel require a signature.
 * A channel without a secret accepts unsigned requests. This is a deliberate
 * reduced-security default for zero-configuration channels.
 */
func (c Channel) HasSecret() bool {
	return c.Secret != ""
}

// URL returns the relative delivery URL for the channel
func (c Channel) URL() string {
	return "/hook/" + c.ID
}
