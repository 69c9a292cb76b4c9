package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/marcelsud/webhook-relay/hooklog"
	"github.com/marcelsud/webhook-relay/relay/render"
)

/* JSONL implementation of hooklog.Repository
 * One segment file per calendar day (2025-06-01.jsonl), each record a
 * single JSON line. Appends are serialized behind a mutex so
 * concurrent handlers never interleave lines within a segment.
 */

const segmentExt = ".jsonl"

// record is the on-disk representation of a log entry
type record struct {
	Channel        string            `json:"channel"`
	ReceivedAt     time.Time         `json:"received_at"`
	Format         string            `json:"format"`
	Outcome        string            `json:"outcome"`
	Reason         string            `json:"reason,omitempty"`
	RenderedText   string            `json:"rendered_text"`
	PayloadPreview string            `json:"payload_preview"`
	Headers        map[string]string `json:"headers,omitempty"`
}

type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates the log directory and returns a segment store
func NewStore(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	return &Store{
		dir: dir,
		now: time.Now,
	}, nil
}

// Append writes one record to the current day's segment
func (s *Store) Append(ctx context.Context, rec hooklog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := json.Marshal(record{
		Channel:        rec.ChannelID,
		ReceivedAt:     rec.ReceivedAt,
		Format:         rec.Format.String(),
		Outcome:        rec.Outcome.String(),
		Reason:         rec.Reason,
		RenderedText:   rec.RenderedText,
		PayloadPreview: rec.PayloadPreview,
		Headers:        rec.Headers,
	})
	if err != nil {
		return fmt.Errorf("marshaling log record: %w", err)
	}

	path := filepath.Join(s.dir, s.now().UTC().Format(time.DateOnly)+segmentExt)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log segment: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending log record: %w", err)
	}
	return nil
}

/* Recent returns up to limit records, newest first. Segments are
 * walked newest-day first and each segment is read back to front, so
 * the result spans day boundaries correctly.
 */
func (s *Store) Recent(ctx context.Context, limit int) ([]hooklog.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	segments, err := s.segments()
	if err != nil {
		return nil, err
	}

	var out []hooklog.Record
	for _, path := range segments {
		records, err := readSegment(path)
		if err != nil {
			return nil, err
		}
		for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, records[i])
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// segments lists segment paths newest first
func (s *Store) segments() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading log dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), segmentExt) {
			names = append(names, e.Name())
		}
	}
	// Segment names are dates, so lexical order is chronological
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(s.dir, name)
	}
	return paths, nil
}

func readSegment(path string) ([]hooklog.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log segment: %w", err)
	}
	defer f.Close()

	var records []hooklog.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parsing log record: %w", err)
		}
		records = append(records, hooklog.Record{
			ChannelID:      rec.Channel,
			ReceivedAt:     rec.ReceivedAt,
			Format:         render.NewFormat(rec.Format),
			Outcome:        hooklog.NewOutcome(rec.Outcome),
			Reason:         rec.Reason,
			RenderedText:   rec.RenderedText,
			PayloadPreview: rec.PayloadPreview,
			Headers:        rec.Headers,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log segment: %w", err)
	}
	return records, nil
}
