package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

/* Rendering turns an arbitrary webhook payload into a plain-text
 * notification block. It is a pure function of (headers, body):
 * identical input always produces identical output, malformed or
 * partial payloads degrade to placeholders, and every branch yields
 * a non-empty text.
 */

const (
	maxCommits    = 3    // commit lines shown for a push event
	maxLineLen    = 50   // truncation for titles and commit subjects
	maxValueLen   = 100  // truncation for generic field values
	maxPreviewLen = 200  // JSON preview when nothing else matched
	maxRawLen     = 1000 // unparseable body excerpt carried as "raw"
	maxFields     = 10   // top-level keys shown by the generic renderer
)

// Payload is a decoded JSON object; missing fields degrade to placeholders
type Payload map[string]any

/* detector pairs a match predicate with its renderer.
 * The chain is ordered and first match wins, so adding a provider is
 * an additive, local change.
 */
type detector struct {
	format Format
	match  func(headers map[string]string, p Payload) bool
	render func(headers map[string]string, p Payload) string
}

var detectors = []detector{
	{GitHub, matchGitHubHeader, renderGitHubEvent},
	{Stripe, matchStripe, func(_ map[string]string, p Payload) string { return renderStripe(p) }},
	{GitHub, matchGitHubShape, renderGitHubShape},
}

// Render detects the payload shape and renders it to text
func Render(headers map[string]string, body []byte) (Format, string) {
	p := parse(body)
	for _, d := range detectors {
		if d.match(headers, p) {
			return d.format, d.render(headers, p)
		}
	}
	return Generic, renderGeneric(p)
}

/* parse decodes the body into a Payload. Non-object or malformed
 * bodies become a one-key payload carrying a bounded raw excerpt,
 * which the generic renderer knows how to show.
 */
func parse(body []byte) Payload {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil || p == nil {
		return Payload{"raw": truncate(strings.ToValidUTF8(string(body), "�"), maxRawLen)}
	}
	return p
}

func matchGitHubHeader(headers map[string]string, _ Payload) bool {
	return headerGet(headers, "X-GitHub-Event") != ""
}

func matchStripe(_ map[string]string, p Payload) bool {
	eventType := getString(p, "type")
	if eventType == "" {
		return false
	}
	if getString(p, "object") == "event" {
		return true
	}
	for _, prefix := range []string{"payment_intent", "customer", "subscription", "invoice"} {
		if strings.HasPrefix(eventType, prefix) {
			return true
		}
	}
	return false
}

// GitHub payloads arriving without the event header still have a telltale shape
func matchGitHubShape(_ map[string]string, p Payload) bool {
	_, hasRepo := p["repository"]
	_, hasSender := p["sender"]
	return hasRepo && hasSender
}

func renderGitHubEvent(headers map[string]string, p Payload) string {
	return renderGitHub(p, headerGet(headers, "X-GitHub-Event"))
}

func renderGitHubShape(_ map[string]string, p Payload) string {
	return renderGitHub(p, getString(p, "action"))
}

func renderGitHub(p Payload, event string) string {
	repo := orPlaceholder(getPath(p, "repository", "full_name"))
	sender := orPlaceholder(getPath(p, "sender", "login"))

	switch event {
	case "push":
		pusher := getPath(p, "pusher", "name")
		if pusher == "" {
			pusher = sender
		}
		branch := strings.TrimPrefix(getString(p, "ref"), "refs/heads/")
		commits := getSlice(p, "commits")

		lines := []string{
			fmt.Sprintf("Push to %s", repo),
			fmt.Sprintf("Branch: %s", orPlaceholder(branch)),
			fmt.Sprintf("By: %s", orPlaceholder(pusher)),
			fmt.Sprintf("Commits: %d", len(commits)),
		}
		for i, c := range commits {
			if i == maxCommits {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(commits)-maxCommits))
				break
			}
			msg, _ := c.(map[string]any)
			subject, _, _ := strings.Cut(getString(msg, "message"), "\n")
			lines = append(lines, "  - "+truncate(subject, maxLineLen))
		}
		return strings.Join(lines, "\n")

	case "pull_request":
		pr, _ := p["pull_request"].(map[string]any)
		return strings.Join([]string{
			fmt.Sprintf("PR #%s %s", orPlaceholder(getNumberString(pr, "number")), orPlaceholder(getString(p, "action"))),
			repo,
			truncate(getString(pr, "title"), maxLineLen),
			"By: " + sender,
		}, "\n")

	case "issues":
		issue, _ := p["issue"].(map[string]any)
		return strings.Join([]string{
			fmt.Sprintf("Issue #%s %s", orPlaceholder(getNumberString(issue, "number")), orPlaceholder(getString(p, "action"))),
			repo,
			truncate(getString(issue, "title"), maxLineLen),
			"By: " + sender,
		}, "\n")

	case "star":
		verb := "starred"
		if getString(p, "action") == "deleted" {
			verb = "unstarred"
		}
		return strings.Join([]string{
			"Star: " + repo,
			fmt.Sprintf("%s %s", sender, verb),
			"Total: " + orPlaceholder(getNumberString(getMap(p, "repository"), "stargazers_count")),
		}, "\n")

	case "release":
		release, _ := p["release"].(map[string]any)
		return strings.Join([]string{
			fmt.Sprintf("Release %s: %s", orPlaceholder(getString(p, "action")), orPlaceholder(getString(release, "tag_name"))),
			repo,
			"By: " + sender,
		}, "\n")

	default:
		if event == "" {
			event = "event"
		}
		return strings.Join([]string{
			"GitHub: " + event,
			repo,
			"By: " + sender,
		}, "\n")
	}
}

func renderStripe(p Payload) string {
	eventType := getString(p, "type")
	data := getMap(getMap(p, "data"), "object")

	switch {
	case strings.Contains(eventType, "payment_intent"):
		amount, _ := data["amount"].(float64)
		currency := strings.ToUpper(getString(data, "currency"))
		if currency == "" {
			currency = "USD"
		}
		return strings.Join([]string{
			"Stripe: " + eventType,
			fmt.Sprintf("Amount: %.2f %s", amount/100, currency),
			"Status: " + orPlaceholder(getString(data, "status")),
		}, "\n")

	case strings.Contains(eventType, "customer"):
		return strings.Join([]string{
			"Stripe: " + eventType,
			"Customer: " + orPlaceholder(getString(data, "email")),
		}, "\n")

	case strings.Contains(eventType, "subscription"):
		return strings.Join([]string{
			"Stripe: " + eventType,
			"Status: " + orPlaceholder(getString(data, "status")),
		}, "\n")

	default:
		return "Stripe: " + orPlaceholder(eventType)
	}
}

/* wellKnownKeys are shown first by the generic renderer, in this
 * order, when present
 */
var wellKnownKeys = []string{"action", "event", "type", "status", "message", "name", "email", "url"}

func renderGeneric(p Payload) string {
	lines := []string{"Webhook received"}
	shown := make(map[string]bool)

	for _, key := range wellKnownKeys {
		if v, ok := p[key]; ok {
			lines = append(lines, key+": "+summarize(v))
			shown[key] = true
		}
	}

	// Remaining top-level keys, sorted for deterministic output
	var rest []string
	for key := range p {
		if !shown[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	fields := len(shown)
	for _, key := range rest {
		if fields == maxFields {
			lines = append(lines, fmt.Sprintf("... and %d more fields", len(p)-maxFields))
			break
		}
		lines = append(lines, key+": "+summarize(p[key]))
		fields++
	}

	if len(lines) == 1 {
		preview, err := json.Marshal(p)
		if err != nil || string(preview) == "{}" {
			lines = append(lines, "(empty payload)")
		} else {
			lines = append(lines, truncate(string(preview), maxPreviewLen))
		}
	}

	return strings.Join(lines, "\n")
}

/* summarize renders a single JSON value on one line. Nested
 * structures are summarized, not dumped.
 */
func summarize(v any) string {
	switch val := v.(type) {
	case string:
		return truncate(val, maxValueLen)
	case map[string]any:
		return fmt.Sprintf("object with %d keys", len(val))
	case []any:
		return fmt.Sprintf("array with %d items", len(val))
	case nil:
		return "null"
	case float64:
		return formatNumber(val)
	default:
		return truncate(fmt.Sprintf("%v", val), maxValueLen)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
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

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func getSlice(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	s, _ := m[key].([]any)
	return s
}

func getPath(m map[string]any, key, sub string) string {
	return getString(getMap(m, key), sub)
}

func getNumberString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	n, ok := m[key].(float64)
	if !ok {
		return ""
	}
	return formatNumber(n)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
