package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/net64plus/net64update"
	"github.com/net64plus/net64update/internal/exepath"
	"github.com/net64plus/net64update/internal/process"
)

var errServerRunning = errors.New("the server is running, stop it before installing")

func newInstallServerCommand(c *cli) *cobra.Command {
	options := checkOptions{}
	var checksums string
	cmd := &cobra.Command{
		Use:   "install-server [PATH]",
		Short: "Install or update the companion server executable",
		Long: "Install or update the companion server executable at PATH (default to the server.path setting).\n" +
			"The installed version is recorded next to the executable.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := c.cfg.Server.Path
			if len(args) == 1 {
				target = args[0]
				c.cfg.Server.Path = target
			}
			if target == "" {
				return errors.New("no server path: give one as argument or set server.path")
			}

			running, err := isRunning(target)
			if err != nil {
				return fmt.Errorf("cannot list the running processes: %w", err)
			}
			if running {
				return fmt.Errorf("%w: %s", errServerRunning, target)
			}

			destination, err := exepath.ResolveTarget(target)
			if err != nil {
				return err
			}
			up, err := c.updater(net64update.StreamServer, options, validatorFor(checksums))
			if err != nil {
				return err
			}
			result := up.CheckForUpdate(cmd.Context())
			if result.Failed() {
				return fmt.Errorf("cannot check server releases: %w", result.Err)
			}
			out := cmd.OutOrStdout()
			if !result.Found() {
				_, _ = fmt.Fprintln(out, "server is up to date")
				return nil
			}

			if err := up.InstallTo(cmd.Context(), result, destination, progressPrinter(cmd.ErrOrStderr(), result.AssetName)); err != nil {
				return err
			}
			if err := os.WriteFile(versionFile(target), []byte(result.Version+"\n"), 0o644); err != nil {
				c.log.Warnf("cannot record the installed server version: %v", err)
			}
			_, _ = fmt.Fprintf(out, "server %s installed to %s\n", result.Version, target)
			return nil
		},
	}
	addUpdaterFlags(cmd, &options)
	cmd.Flags().StringVar(&checksums, "checksums", "", "validate the asset: \"sha256\" for one <asset>.sha256 file per asset, or the name of a checksum file of the release")
	return cmd
}

var isRunning = process.IsRunning

// validatorFor returns the validator of a --checksums value
func validatorFor(checksums string) net64update.Validator {
	switch checksums {
	case "":
		return nil
	case "sha256":
		return &net64update.SHAValidator{}
	default:
		return &net64update.ChecksumValidator{UniqueFilename: checksums}
	}
}
