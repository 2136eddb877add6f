// Command personsctl is a terminal client for the persons API. It keeps the
// login session on disk so later commands reuse the token.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/aussiebroadwan/persons/pkg/personsdk"
)

const defaultServer = "http://localhost:8080"

type command struct {
	usage string
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"login":    {"login -email EMAIL", runLogin},
	"register": {"register -first NAME -last NAME -email EMAIL", runRegister},
	"logout":   {"logout", runLogout},
	"me":       {"me", runMe},
	"users":    {"users", runUsers},
	"list":     {"list", runList},
	"all":      {"all", runAll},
	"get":      {"get ID", runGet},
	"create":   {"create -first NAME -last NAME -cnp CNP ... ", runCreate},
	"update":   {"update ID [-field VALUE ...] [-clear-photo]", runUpdate},
	"delete":   {"delete ID", runDelete},
}

// cli carries what every command needs.
type cli struct {
	server      string
	sessionPath string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer

	// serverSet is true when the base URL was chosen on this invocation,
	// otherwise the URL saved with the session is used.
	serverSet bool

	lines *bufio.Reader
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("personsctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	fs.StringVar(&c.server, "server", envOr("PERSONS_SERVER", defaultServer), "API base URL")
	fs.StringVar(&c.sessionPath, "session", os.Getenv("PERSONS_SESSION"), "session file (default: user config dir)")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	fs.Visit(func(f *flag.Flag) { c.serverSet = c.serverSet || f.Name == "server" })
	c.serverSet = c.serverSet || os.Getenv("PERSONS_SERVER") != ""

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		fs.Usage()
		return 2
	}

	if c.sessionPath == "" {
		path, err := personsdk.DefaultSessionPath()
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		c.sessionPath = path
	}

	if err := cmd.run(ctx, c, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "error: %s\n", describe(err))
		return 1
	}
	return 0
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: personsctl [-server URL] [-session FILE] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w)
	fs.PrintDefaults()
}

// describe turns SDK errors into messages for a terminal.
func describe(err error) string {
	var apiErr *personsdk.APIError
	switch {
	case errors.Is(err, personsdk.ErrNotLoggedIn):
		return "not logged in, run: personsctl login -email EMAIL"
	case errors.Is(err, personsdk.ErrSessionExpired):
		return "session expired, log in again"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("%s (HTTP %d)", apiErr.Message, apiErr.StatusCode)
	default:
		return err.Error()
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
