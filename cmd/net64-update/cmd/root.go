package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/net64plus/net64update"
	sourcecmd "github.com/net64plus/net64update/cmd"
	"github.com/net64plus/net64update/internal/config"
	"github.com/net64plus/net64update/internal/logger"
	"github.com/net64plus/net64update/internal/version"
)

// flags of the root command overriding a configuration key
var overrideFlags = map[string]string{
	"provider":        config.KeySourceProvider,
	"source-url":      config.KeySourceURL,
	"feed":            config.KeySourceFeed,
	"backend-url":     config.KeyBackendURL,
	"timeout":         config.KeyTimeout,
	"platform":        config.KeyPlatform,
	"skip-prerelease": config.KeySkipPrerelease,
	"log-level":       config.KeyLogLevel,
}

// cli holds the state shared by the subcommands once the configuration is loaded
type cli struct {
	configPath string
	cfg        *config.Config
	log        *zap.SugaredLogger
}

// Execute runs the net64-update CLI and exits with non-zero status on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "net64-update",
		Short:         "Check, download and install Net64+ releases",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "path to configuration file (default "+config.DefaultPath()+")")
	flags.String("provider", "", "release source: "+fmt.Sprint(config.Providers))
	flags.String("source-url", "", "base URL of the release source (GitHub Enterprise, Gitea, GitLab or HTTP feed)")
	flags.String("feed", "", "path of the release feed of an HTTP source")
	flags.String("backend-url", "", "base URL of the server listing backend")
	flags.Duration("timeout", net64update.DefaultTimeout, "timeout of a release or server listing request")
	flags.String("platform", "", "platform identifier of the assets (default "+net64update.CurrentPlatform()+")")
	flags.Bool("skip-prerelease", false, "ignore pre-releases")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newCheckCommand(c),
		newDownloadCommand(c),
		newInstallServerCommand(c),
		newServersCommand(c),
	)
	version.AttachCobraVersionCommand(root)
	return root
}

// load reads the configuration with the flags set on the command line on top, then sets up logging
func (c *cli) load(cmd *cobra.Command) error {
	overrides := make(map[string]any)
	for name, key := range overrideFlags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		overrides[key] = flag.Value.String()
	}

	cfg, err := config.Load(c.configPath, overrides)
	if err != nil {
		return err
	}
	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	c.cfg = cfg
	c.log = logger.NewWithWriter(cmd.ErrOrStderr(), level)
	net64update.SetLogger(logger.ForLibrary(c.log))
	return nil
}

func (c *cli) source() (net64update.Source, error) {
	return sourcecmd.GetSource(c.cfg.Source.Provider, c.cfg.Source.URL, sourcecmd.SourceOptions{
		Token:   c.cfg.Source.Token,
		Feed:    c.cfg.Source.Feed,
		Timeout: c.cfg.Timeout,
	})
}
