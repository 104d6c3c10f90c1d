// Command net64-update checks, downloads and installs Net64+ releases from the command line.
package main

import "github.com/net64plus/net64update/cmd/net64-update/cmd"

func main() {
	cmd.Execute()
}
