// Command serve-repo serves a directory of releases as an HTTP release feed.
//
// The directory is laid out as <owner>/<repo>/<tag>/<asset files>. A request to
// <prefix>/<owner>/<repo>/releases returns the JSON feed of the tags found there,
// unless a static "releases" file exists in the repository directory.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var root, listen, prefix string
	cmd := &cobra.Command{
		Use:          "serve-repo",
		Short:        "Serve a directory of releases as an HTTP release feed",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
			defer stop()

			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())

			server := &http.Server{
				Addr:              listen,
				Handler:           newFeedHandler(root, prefix, log),
				ReadHeaderTimeout: 15 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			log.Infof("serving %s on http://%s%s", root, listen, cleanPrefix(prefix))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "repo", ".", "root path of the release directory")
	cmd.Flags().StringVar(&listen, "listen", "localhost:9947", "IP address and port used for the HTTP server")
	cmd.Flags().StringVar(&prefix, "path-prefix", "/repo", "prefix to the root path of the HTTP server")
	return cmd
}
