package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/net64plus/net64update"
)

func newDownloadCommand(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download an asset, showing the progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := output
			if target == "" {
				var err error
				target, err = outputName(args[0])
				if err != nil {
					return err
				}
			}

			downloader := net64update.NewDownloader(net64update.ClientConfig{
				BaseURL: c.cfg.Source.URL,
				APIKey:  c.cfg.Source.Token,
			})
			data, err := downloader.Download(cmd.Context(), args[0], progressPrinter(cmd.ErrOrStderr(), target))
			if err != nil {
				return err
			}
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return err
			}
			c.log.Infof("saved %d bytes to %s", len(data), target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default to the last element of the URL path)")
	return cmd
}

func outputName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("cannot guess a file name from %q, use --output", rawURL)
	}
	return name, nil
}
