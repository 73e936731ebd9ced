// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles initial configuration and database creation.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles session management.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the chart server session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Store a session token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "How long the session stays valid",
						Value: authDefaultTTL,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session",
				Action: r.AuthLogout,
			},
		},
	}
}

// chartsCommand handles catalog operations.
func chartsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "charts",
		Aliases: []string{"chart"},
		Usage:   "Browse and mutate your chart catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List one page of your charts",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "0-based page to fetch",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: table, json, csv, markdown, txt",
						Value:   "table",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Serve from the local cache without a network call",
					},
				},
				Action: r.ChartsList,
			},
			{
				Name:   "upload",
				Usage:  "Upload a new chart",
				Flags:  append(submissionFlags(), requiredFileFlags()...),
				Action: r.ChartsUpload,
			},
			{
				Name:  "edit",
				Usage: "Update fields or files of an existing chart",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  append(submissionFlags(), optionalFileFlags()...),
				Action: r.ChartsEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete a chart",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the deletion",
					},
				},
				Action: r.ChartsDelete,
			},
			{
				Name:  "visibility",
				Usage: "Set a chart's visibility (PRIVATE, PUBLIC, UNLISTED)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "status"},
				},
				Action: r.ChartsVisibility,
			},
			{
				Name:  "dump",
				Usage: "Export the full catalog to disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, txt",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Page requests per second",
					},
				},
				Action: r.ChartsDump,
			},
		},
	}
}

// submissionFlags are the metadata fields shared by upload and edit.
func submissionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Chart title"},
		&cli.StringFlag{Name: "artists", Usage: "Artist credit"},
		&cli.StringFlag{Name: "author", Usage: "Charter name"},
		&cli.StringFlag{Name: "rating", Usage: "Difficulty rating (whole number)"},
		&cli.StringFlag{Name: "description", Usage: "Chart description"},
		&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
	}
}

func requiredFileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "jacket", Usage: "Path to jacket image", Required: true},
		&cli.StringFlag{Name: "bgm", Usage: "Path to audio file", Required: true},
		&cli.StringFlag{Name: "chart", Usage: "Path to chart file", Required: true},
		&cli.StringFlag{Name: "preview", Usage: "Path to preview audio"},
		&cli.StringFlag{Name: "background", Usage: "Path to background image"},
	}
}

func optionalFileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "jacket", Usage: "Path to replacement jacket image"},
		&cli.StringFlag{Name: "bgm", Usage: "Path to replacement audio file"},
		&cli.StringFlag{Name: "chart", Usage: "Path to replacement chart file"},
		&cli.StringFlag{Name: "preview", Usage: "Path to replacement preview audio"},
		&cli.StringFlag{Name: "background", Usage: "Path to replacement background image"},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Action:  r.TUI,
	}
}
