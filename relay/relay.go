package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/hooklog"
	"github.com/marcelsud/webhook-relay/relay/render"
	"github.com/marcelsud/webhook-relay/relay/signature"
)

var (
	// ErrMissingSignature is returned when a channel requires a signature and none was sent
	ErrMissingSignature = errors.New("missing signature")
	// ErrInvalidSignature is returned when the supplied signature does not match the body
	ErrInvalidSignature = errors.New("invalid signature")
)

// signatureHeaders are checked in order for the supplied signature
var signatureHeaders = []string{"X-Hub-Signature-256", "X-Webhook-Signature"}

/* Notifier forwards a rendered notification to the external
 * messaging sink. Implementations must bound their own timeouts so a
 * hung network call cannot block the pipeline indefinitely.
 */
type Notifier interface {
	Notify(ctx context.Context, chatID, text string) error
}

// Result reports what the pipeline did with a delivery
type Result struct {
	Format    render.Format
	Forwarded bool
}

// UseCase defines the delivery pipeline operation
type UseCase interface {
	Handle(ctx context.Context, channelID string, headers map[string]string, body []byte) (Result, error)
}

/* Service orchestrates a delivery: resolve channel, verify signature,
 * render, forward to the sink, append exactly one audit record.
 * There is no retry loop; a sink failure is recorded, not retried,
 * and the sender still gets an acknowledgment.
 */
type Service struct {
	Channels channel.Reader
	Log      hooklog.Appender
	Notifier Notifier

	// DefaultChatID is used when a channel has no chat id of its own
	DefaultChatID string
	/* LogRejected controls whether bad-signature deliveries still
	 * write an audit record. Defaults to true in the service wiring.
	 */
	LogRejected bool
}

// NewService creates a new relay service with dependency injection
func NewService(channels channel.Reader, log hooklog.Appender, notifier Notifier, defaultChatID string, logRejected bool) *Service {
	return &Service{
		Channels:      channels,
		Log:           log,
		Notifier:      notifier,
		DefaultChatID: defaultChatID,
		LogRejected:   logRejected,
	}
}

// Handle processes one inbound webhook delivery
func (s *Service) Handle(ctx context.Context, channelID string, headers map[string]string, body []byte) (Result, error) {
	/* Unknown channel: no record is written. There is no channel
	 * context to audit and a probe of a dead URL is not an ingestion
	 * attempt. This policy is fixed; see the delete tests.
	 */
	ch, err := s.Channels.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, channel.ErrNotFound) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("resolving channel: %w", err)
	}

	if ch.HasSecret() {
		if err := s.verify(ctx, ch, headers, body); err != nil {
			return Result{}, err
		}
	}

	format, text := render.Render(headers, body)
	text = fmt.Sprintf("[%s]\n%s", ch.Name, text)

	rec := hooklog.Record{
		ChannelID:      ch.ID,
		ReceivedAt:     time.Now().UTC(),
		Format:         format,
		RenderedText:   text,
		PayloadPreview: hooklog.Preview(body),
		Headers:        hooklog.FilterHeaders(headers),
	}

	forwarded := false
	chatID := ch.TelegramChatID
	if chatID == "" {
		chatID = s.DefaultChatID
	}

	switch {
	case chatID == "":
		rec.Outcome = hooklog.Failure
		rec.Reason = "no chat id configured"
	default:
		// Single attempt; a failure here is recorded, never retried
		if err := s.Notifier.Notify(ctx, chatID, text); err != nil {
			rec.Outcome = hooklog.Failure
			rec.Reason = err.Error()
		} else {
			rec.Outcome = hooklog.Success
			forwarded = true
		}
	}

	if err := s.Log.Append(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("appending log record: %w", err)
	}

	return Result{Format: format, Forwarded: forwarded}, nil
}

/* verify checks the delivery signature and, when rejection logging
 * is enabled, writes the audit record for the refused request.
 */
func (s *Service) verify(ctx context.Context, ch channel.Channel, headers map[string]string, body []byte) error {
	supplied := ""
	for _, name := range signatureHeaders {
		if v := headerGet(headers, name); v != "" {
			supplied = v
			break
		}
	}

	verifyErr := ErrMissingSignature
	if supplied != "" {
		if signature.Verify(ch.Secret, body, supplied) {
			return nil
		}
		verifyErr = ErrInvalidSignature
	}

	if s.LogRejected {
		reason := "missing signature"
		if errors.Is(verifyErr, ErrInvalidSignature) {
			reason = "bad signature"
		}
		rec := hooklog.Record{
			ChannelID:      ch.ID,
			ReceivedAt:     time.Now().UTC(),
			Format:         render.Generic,
			Outcome:        hooklog.Failure,
			Reason:         reason,
			PayloadPreview: hooklog.Preview(body),
			Headers:        hooklog.FilterHeaders(headers),
		}
		if err := s.Log.Append(ctx, rec); err != nil {
			return fmt.Errorf("appending rejection record: %w", err)
		}
	}

	return verifyErr
}

// headerGet performs a case-insensitive header lookup
func headerGet(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
