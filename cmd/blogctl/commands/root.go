package commands

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/inkpost/blog-system/internal/core/service"
	"github.com/inkpost/blog-system/internal/infrastructure/config"
	"github.com/inkpost/blog-system/internal/infrastructure/db"
	"github.com/inkpost/blog-system/internal/infrastructure/markdown"
	"github.com/inkpost/blog-system/internal/infrastructure/notify"
	"github.com/inkpost/blog-system/pkg/logger"
)

const envPrefix = "BLOGCTL_"

// app is the dependency graph built before any subcommand runs.
type app struct {
	cfg      *config.Config
	backend  *db.Backend
	identity *service.IdentityService
	content  *service.ContentService
	renderer *markdown.Renderer
}

type cli struct {
	home     string
	logLevel string
	lookuper envconfig.Lookuper
	now      func() time.Time
	app      *app
}

func Execute() error {
	root, c := newRootCmd(envconfig.OsLookuper())
	defer c.close()
	return root.Execute()
}

func newRootCmd(l envconfig.Lookuper) (*cobra.Command, *cli) {
	c := &cli{lookuper: l, now: time.Now}

	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Write and browse blog posts from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.home, "home", "", "state dir (default $BLOGCTL_HOME or ~/.blogctl)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "error", "log level: trace, debug, info, warn, error")

	root.AddCommand(loginCmd(c), registerCmd(c), logoutCmd(c), whoamiCmd(c), postsCmd(c))
	return root, c
}

func (c *cli) close() {
	if c.app != nil {
		_ = c.app.backend.Close(context.Background())
	}
}

func (c *cli) open(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadWith(ctx, envconfig.PrefixLookuper(envPrefix, c.lookuper))
	if err != nil {
		return err
	}

	home, err := c.resolveHome()
	if err != nil {
		return err
	}
	if cfg.Storage.Backend == config.BackendFile {
		cfg.Storage.Dir = home
	}

	logger.Init(logger.Options{Level: c.logLevel, Pretty: true, Output: cmd.ErrOrStderr(), Service: "blogctl"})

	backend, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}

	sink := notify.NewWriterSink(cmd.ErrOrStderr())
	now := c.now().UTC()

	identity, err := service.NewIdentityService(backend.Store, sink, service.DemoDirectory(now), logger.Component("identity"))
	if err != nil {
		_ = backend.Close(ctx)
		return err
	}
	if err := identity.Restore(ctx); err != nil {
		_ = backend.Close(ctx)
		return err
	}

	var opts []service.ContentOption
	if cfg.SeedSamplePosts {
		opts = append(opts, service.WithSeed(service.SamplePosts(now)))
	}
	content := service.NewContentService(backend.Store, identity, sink, logger.Component("content"), opts...)
	if err := content.Load(ctx); err != nil {
		_ = backend.Close(ctx)
		return err
	}

	c.app = &app{
		cfg:      cfg,
		backend:  backend,
		identity: identity,
		content:  content,
		renderer: markdown.NewRenderer(cfg.RenderSanitize),
	}
	return nil
}

func (c *cli) resolveHome() (string, error) {
	if c.home != "" {
		return c.home, nil
	}
	if v, ok := c.lookuper.Lookup(envPrefix + "HOME"); ok && v != "" {
		return v, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".blogctl"), nil
}
