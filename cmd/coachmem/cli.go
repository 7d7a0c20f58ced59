package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
	"github.com/ldelaney/coachmem/internal/notes"
	"github.com/ldelaney/coachmem/internal/ops"
	"github.com/ldelaney/coachmem/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *ops.Memory) *cli.App {
	app := &cli.App{
		Name:    "coachmem",
		Usage:   "Long-term coach memory and transcript timings",
		Version: Version,
		Commands: []*cli.Command{
			rememberCmd(svc),
			searchCmd(svc),
			processCmd(svc),
			logMessageCmd(svc),
			notesCmd(svc),
			timingsCmd(),
			serveCmd(svc),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// rememberCmd creates the remember command.
func rememberCmd(svc *ops.Memory) *cli.Command {
	return &cli.Command{
		Name:  "remember",
		Usage: "Store text in long-term memory (reads text from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Required: true, Usage: "Session ID"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Value: memory.TypeConversation, Usage: "Memory type: conversation|insight|action"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("text is required"))
			}

			result := svc.Remember(c.Context, ops.RememberInput{
				SessionID:  c.String("session"),
				Text:       text,
				MemoryType: c.String("type"),
			})

			// Capture never fails loudly, but the CLI is a human surface;
			// report the reason when nothing was stored.
			if !result.Stored {
				return outputError(result.Err)
			}
			return outputJSON(result)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(svc *ops.Memory) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search long-term memory by semantic similarity",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results (default from config)"},
		},
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")

			output, err := svc.Search(c.Context, ops.SearchInput{
				Query: query,
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// processCmd creates the process command.
func processCmd(svc *ops.Memory) *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Extract and store memory segments from a session's recent history",
		ArgsUsage: "<session-id>",
		Action: func(c *cli.Context) error {
			output, err := svc.ProcessSession(c.Context, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// logMessageCmd creates the log-message command.
func logMessageCmd(svc *ops.Memory) *cli.Command {
	return &cli.Command{
		Name:  "log-message",
		Usage: "Append one conversation turn to a session (reads text from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Required: true, Usage: "Session ID"},
			&cli.StringFlag{Name: "sender", Required: true, Usage: "Sender: user|coach"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := svc.LogMessage(c.Context, ops.LogMessageInput{
				SessionID: c.String("session"),
				Sender:    c.String("sender"),
				Text:      text,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// notesCmd creates the notes command.
func notesCmd(svc *ops.Memory) *cli.Command {
	return &cli.Command{
		Name:      "notes",
		Usage:     "Print markdown session notes for a session",
		ArgsUsage: "<session-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "html", Usage: "Render HTML instead of markdown"},
		},
		Action: func(c *cli.Context) error {
			sessionID := c.Args().First()

			messages, err := svc.SessionHistory(c.Context, sessionID, 0)
			if err != nil {
				return outputError(err)
			}

			md := notes.Markdown(sessionID, messages)
			if c.Bool("html") {
				rendered, err := notes.HTML(md)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				fmt.Print(rendered)
				return nil
			}

			fmt.Print(md)
			return nil
		},
	}
}

// timingsCmd creates the timings command.
func timingsCmd() *cli.Command {
	return &cli.Command{
		Name:  "timings",
		Usage: "Estimate per-word start offsets for a transcript (reads text from stdin)",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "duration", Aliases: []string{"d"}, Required: true, Usage: "Audio duration in seconds"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Timings(ops.TimingsInput{
				Text:     text,
				Duration: c.Float64("duration"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(svc *ops.Memory) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the coachmem HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8137, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(svc, c.String("bind"), c.Int("port"))
			return web.Run(srv, svc.Log)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := err.(*errors.CoachError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
