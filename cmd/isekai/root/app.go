package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/config"
	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/random"
	"github.com/Reiker1894/isekai-system/internal/storage"
)

// session is one loaded document plus the service wrapping it.
type session struct {
	cfg   config.Config
	store storage.Store
	svc   *engine.Service
}

func (o *options) config() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.dataFile != "" {
		cfg.DataFile = o.dataFile
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func (o *options) open(ctx context.Context, errOut io.Writer) (*session, func(), error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}
	st, err := storage.Open(ctx, cfg.Engine, cfg.DataFile)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = st.Close()
	}
	doc, err := st.Load(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	rng, err := random.New()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(errOut, "isekai: ", log.LstdFlags)
	}
	svc := engine.NewService(doc, rng, engine.WithLogger(logger))
	return &session{cfg: cfg, store: st, svc: svc}, cleanup, nil
}

func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.svc.Document()); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *session) backups() *storage.Backups {
	return storage.NewBackups(s.cfg.BackupDir)
}

// run loads the document, runs fn and saves once when mutate is set and fn succeeded.
// Mutating commands take the daily snapshot first when auto backup is on.
func (o *options) run(cmd *cobra.Command, mutate bool, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, cleanup, err := o.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	if mutate && s.cfg.AutoBackup {
		if _, _, err := s.backups().AutoBackup(s.svc.Document(), s.svc.Now()); err != nil {
			return err
		}
	}
	if err := fn(ctx, s); err != nil {
		return err
	}
	if !mutate {
		return nil
	}
	return s.save(ctx)
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(what + " required")
		}
		return nil
	}
}

func intArg(args []string, i int, name string) (int, error) {
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
