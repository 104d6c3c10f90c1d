package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/net64plus/net64update"
	sourcecmd "github.com/net64plus/net64update/cmd"
	"github.com/net64plus/net64update/internal/version"
)

var openURL = browser.OpenURL

type checkOptions struct {
	repo      string
	installed string
	open      bool
}

func newCheckCommand(c *cli) *cobra.Command {
	options := checkOptions{}
	cmd := &cobra.Command{
		Use:       "check [app|server]",
		Short:     "Check whether a newer release of the launcher or of the server is available",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"app", "server"},
		RunE: func(cmd *cobra.Command, args []string) error {
			stream := net64update.StreamApplication
			if len(args) == 1 {
				var err error
				stream, err = net64update.ParseStream(args[0])
				if err != nil {
					return err
				}
			}
			up, err := c.updater(stream, options, nil)
			if err != nil {
				return err
			}

			result := up.CheckForUpdate(cmd.Context())
			if result.Failed() {
				return fmt.Errorf("cannot check %s releases: %w", stream, result.Err)
			}
			out := cmd.OutOrStdout()
			if !result.Found() {
				_, _ = fmt.Fprintf(out, "%s is up to date\n", stream)
				return nil
			}
			printResult(out, stream, result)
			if options.open && result.ReleaseURL != "" {
				return openURL(result.ReleaseURL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&options.open, "open", false, "open the release page in a browser when an update is available")
	addUpdaterFlags(cmd, &options)
	return cmd
}

func addUpdaterFlags(cmd *cobra.Command, options *checkOptions) {
	cmd.Flags().StringVar(&options.repo, "repo", "", "follow another repository: \"owner/name\" or \"domain/owner/name\"")
	cmd.Flags().StringVar(&options.installed, "installed", "", "version to compare the releases against")
}

func printResult(out io.Writer, stream net64update.Stream, result net64update.UpdateResult) {
	_, _ = fmt.Fprintf(out, "%s update available: %s", stream, result.Version)
	if result.Prerelease {
		_, _ = fmt.Fprint(out, " (pre-release)")
	}
	_, _ = fmt.Fprintln(out)
	if result.ReleaseName != "" {
		_, _ = fmt.Fprintf(out, "  name:    %s\n", result.ReleaseName)
	}
	_, _ = fmt.Fprintf(out, "  asset:   %s\n", result.AssetName)
	_, _ = fmt.Fprintf(out, "  url:     %s\n", result.URL)
	if result.ReleaseURL != "" {
		_, _ = fmt.Fprintf(out, "  release: %s\n", result.ReleaseURL)
	}
	if notes := strings.TrimSpace(result.Notes); notes != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", notes)
	}
}

// updater builds the update checker of a stream, following another repository when asked to
func (c *cli) updater(stream net64update.Stream, options checkOptions, validator net64update.Validator) (*net64update.Updater, error) {
	repository := net64update.StreamRepository(stream)
	source, err := c.source()
	if err != nil {
		return nil, err
	}
	if options.repo != "" {
		domain, slug, err := sourcecmd.SplitDomainSlug(options.repo)
		if err != nil {
			return nil, err
		}
		if domain != "" {
			source, err = sourcecmd.GetSource(c.cfg.Source.Provider, domain, sourcecmd.SourceOptions{
				Token:   c.cfg.Source.Token,
				Feed:    c.cfg.Source.Feed,
				Timeout: c.cfg.Timeout,
			})
			if err != nil {
				return nil, err
			}
		}
		repository = net64update.ParseSlug(slug)
	}

	return net64update.NewUpdater(net64update.Config{
		Source:         source,
		Repository:     repository,
		CurrentVersion: c.currentVersion(stream, options.installed),
		Validator:      validator,
		Platform:       c.cfg.Platform,
		SkipPrerelease: c.cfg.SkipPrerelease,
	})
}

func (c *cli) currentVersion(stream net64update.Stream, installed string) net64update.VersionFunc {
	if installed != "" {
		return net64update.StaticVersion(installed)
	}
	if stream == net64update.StreamApplication {
		if c.cfg.AppVersion != "" {
			return net64update.StaticVersion(c.cfg.AppVersion)
		}
		return net64update.StaticVersion(version.Current())
	}
	return c.installedServerVersion
}

// installedServerVersion returns the configured server version, or else the version recorded
// next to the server executable by install-server
func (c *cli) installedServerVersion() string {
	if c.cfg.Server.Version != "" {
		return c.cfg.Server.Version
	}
	if c.cfg.Server.Path == "" {
		return ""
	}
	data, err := os.ReadFile(versionFile(c.cfg.Server.Path))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warnf("cannot read installed server version: %v", err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func versionFile(serverPath string) string {
	return strings.TrimSuffix(serverPath, ".exe") + ".version"
}
