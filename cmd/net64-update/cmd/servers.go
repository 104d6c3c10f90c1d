package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/net64plus/net64update"
)

func newServersCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List the public Net64+ servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := net64update.NewBackendClient(net64update.ClientConfig{
				BaseURL: c.cfg.Backend.URL,
				APIKey:  c.cfg.Backend.APIKey,
				Timeout: c.cfg.Timeout,
			})
			if err != nil {
				return err
			}

			result := client.ListServers(cmd.Context())
			if !result.OK {
				return fmt.Errorf("cannot list servers: %w", result.Err)
			}
			out := cmd.OutOrStdout()
			if len(result.Servers) == 0 {
				_, _ = fmt.Fprintln(out, "no server online")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tADDRESS\tPLAYERS\tCOUNTRY\tVERSION\tPASSWORD")
			for _, server := range result.Servers {
				password := "no"
				if server.PasswordRequired {
					password = "yes"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					server.Name, server.Address(), len(server.Players), server.CountryCode, server.Version, password)
			}
			return w.Flush()
		},
	}
}
