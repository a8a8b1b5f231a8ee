// Command ircd runs the IRC server:
//
//	ircd <port> <password>
//
// An optional ircd.toml next to the working directory supplies the
// server name and resource limits; the two arguments always win.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/inconshreveable/log15.v2"

	"github.com/Nalveiz/ft-irc/config"
	"github.com/Nalveiz/ft-irc/server"
)

const configFile = "ircd.toml"

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <port> <password>\n", os.Args[0])
		os.Exit(1)
	}

	logger := log15.New()

	cfg := config.New()
	if err := cfg.FromFile(configFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := cfg.MergeArgs(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	srv := server.New(cfg, logger)
	if err := srv.Listen(); err != nil {
		logger.Crit("startup failed", "err", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		srv.Stop()
	}()

	if err := srv.Run(); err != nil {
		logger.Crit("server died", "err", err)
		os.Exit(1)
	}
}
