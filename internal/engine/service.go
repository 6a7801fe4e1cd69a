package engine

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

// Roller is the random source behind mission rewards, curse rolls and world events.
type Roller interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Service owns one in-memory document for the duration of a user action. All
// components mutate the same document; the caller saves it once afterwards.
// Service is not safe for concurrent use.
type Service struct {
	doc    *storage.Document
	now    func() time.Time
	rng    Roller
	logger *log.Logger
	bosses map[string]BossDef
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRoller(r Roller) Option {
	return func(s *Service) { s.rng = r }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithBossCatalog replaces the embedded boss catalog.
func WithBossCatalog(defs []BossDef) Option {
	return func(s *Service) { s.bosses = indexBosses(defs) }
}

// NewService wraps doc. A nil doc starts from an empty document.
func NewService(doc *storage.Document, rng Roller, opts ...Option) *Service {
	if doc == nil {
		doc = storage.NewDocument()
	}
	doc.Normalize()
	s := &Service{
		doc:    doc,
		now:    func() time.Time { return time.Now().UTC() },
		rng:    rng,
		logger: log.New(io.Discard, "", 0),
		bosses: defaultBosses(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Document() *storage.Document { return s.doc }

func (s *Service) Now() time.Time { return s.now() }

func (s *Service) DarkPoints() int { return s.doc.DarkPoints }

// roll returns a uniform integer in [lo, hi].
func (s *Service) roll(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Service) appendLog(entry string) {
	s.doc.Logs = append(s.doc.Logs, storage.LogEntry{Date: s.now(), Entry: entry})
}

// Logs returns the most recent n log entries, newest last. n <= 0 returns all.
func (s *Service) Logs(n int) []storage.LogEntry {
	logs := s.doc.Logs
	if n > 0 && len(logs) > n {
		logs = logs[len(logs)-n:]
	}
	return logs
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", invalidInput("title is required")
	}
	return t, nil
}
