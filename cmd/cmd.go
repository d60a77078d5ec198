// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the local database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "rollback",
				Usage: "Roll back the most recent database migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupRollback,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Log out and clear stored credentials",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:  "import",
				Usage: "Adopt a browser session from a DevTools cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthImport,
			},
		},
	}
}

// songCommand handles song generation and library operations
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "song",
		Aliases: []string{"songs"},
		Usage:   "Generate and manage songs",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Submit a song generation job",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "Style prompt (defaults to the saved style chooser prompt)",
					},
					&cli.StringFlag{
						Name:  "lyrics",
						Usage: "Lyrics text",
					},
					&cli.StringFlag{
						Name:  "lyrics-file",
						Usage: "Path to a file containing lyrics",
					},
					&cli.BoolFlag{
						Name:  "instrumental",
						Usage: "Generate without vocals",
					},
					&cli.BoolFlag{
						Name:    "wait",
						Aliases: []string{"w"},
						Usage:   "Poll the job until it completes",
					},
				},
				Action: r.SongGenerate,
			},
			{
				Name:  "status",
				Usage: "Check the state of a generation job",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "task-id"},
				},
				Action: r.SongStatus,
			},
			{
				Name:  "list",
				Usage: "List songs in the library",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to return",
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of songs to skip",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongList,
			},
			{
				Name:  "show",
				Usage: "Show a single song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the audio URL in the default browser",
					},
				},
				Action: r.SongShow,
			},
			{
				Name:  "update",
				Usage: "Update song fields",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "New title",
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "New style prompt",
					},
					&cli.StringFlag{
						Name:  "lyrics",
						Usage: "New lyrics",
					},
				},
				Action: r.SongUpdate,
			},
			{
				Name:  "rate",
				Usage: "Rate a song from 1 to 5",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "rating",
						Usage:    "Rating between 1 and 5",
						Required: true,
					},
				},
				Action: r.SongRate,
			},
			{
				Name:  "stems",
				Usage: "Request stem extraction for a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongStems,
			},
			{
				Name:  "export",
				Usage: "Export songs to CSV, Markdown, or plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, or text",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory",
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "Song ID (required for markdown format)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to export",
						Value: 100,
					},
				},
				Action: r.SongExport,
			},
			{
				Name:  "download",
				Usage: "Download song audio files concurrently",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to download",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Output directory (default: mstro_export_{timestamp})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent download workers",
						Value: 5,
					},
				},
				Action: r.SongDownload,
			},
		},
	}
}

// imageCommand handles image generation and library operations
func imageCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "image",
		Aliases: []string{"images", "img"},
		Usage:   "Generate and manage images",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Submit an image generation job",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "prompt",
						Usage:    "Image prompt",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "width",
						Usage: "Image width in pixels",
						Value: 1024,
					},
					&cli.IntFlag{
						Name:  "height",
						Usage: "Image height in pixels",
						Value: 1024,
					},
					&cli.BoolFlag{
						Name:    "wait",
						Aliases: []string{"w"},
						Usage:   "Poll the job until it completes",
					},
				},
				Action: r.ImageGenerate,
			},
			{
				Name:  "status",
				Usage: "Check the state of a generation job",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "task-id"},
				},
				Action: r.ImageStatus,
			},
			{
				Name:  "list",
				Usage: "List images in the library",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of images to return",
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of images to skip",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ImageList,
			},
			{
				Name:  "show",
				Usage: "Show a single image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ImageShow,
			},
			{
				Name:  "update",
				Usage: "Update image fields",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "prompt",
						Usage:    "New prompt",
						Required: true,
					},
				},
				Action: r.ImageUpdate,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete one or more images",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "id",
						Usage:    "Image ID to delete (repeatable)",
						Required: true,
					},
				},
				Action: r.ImageDelete,
			},
		},
	}
}

// templateCommand handles server-stored prompt templates
func templateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "template",
		Aliases: []string{"templates", "tpl"},
		Usage:   "Manage prompt templates",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List prompt templates",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Filter by category",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TemplateList,
			},
			{
				Name:  "show",
				Usage: "Show a single template",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.TemplateShow,
			},
			{
				Name:  "update",
				Usage: "Replace a template's content",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "content",
						Usage: "New template content",
					},
					&cli.StringFlag{
						Name:  "content-file",
						Usage: "Path to a file containing the new content",
					},
				},
				Action: r.TemplateUpdate,
			},
		},
	}
}

// composeCommand handles the local lyric architecture and style chooser
func composeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "compose",
		Usage: "Build song structure and style prompts locally",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the current song structure",
				Action: r.ComposeShow,
			},
			{
				Name:  "add",
				Usage: "Add a section (INTRO, VERSE, CHORUS, BRIDGE, HOOK, OUTRO)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "kind"},
				},
				Action: r.ComposeAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove the section at an index",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "index",
						Aliases:  []string{"i"},
						Usage:    "Zero-based section index",
						Required: true,
					},
				},
				Action: r.ComposeRemove,
			},
			{
				Name:  "move",
				Usage: "Move a section to a new position",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "from",
						Usage:    "Current zero-based index",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "to",
						Usage:    "Target zero-based index",
						Required: true,
					},
				},
				Action: r.ComposeMove,
			},
			{
				Name:   "reset",
				Usage:  "Restore the default verse-chorus structure",
				Action: r.ComposeReset,
			},
			{
				Name:  "style",
				Usage: "Toggle style chooser selections",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "style",
						Usage: "Genre to toggle (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "theme",
						Usage: "Theme to toggle (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "instrument",
						Usage: "Instrument or voice to toggle (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Clear all selections first",
					},
				},
				Action: r.ComposeStyle,
			},
			{
				Name:   "prompt",
				Usage:  "Print the generated style prompt",
				Action: r.ComposePrompt,
			},
		},
	}
}

// chatCommand handles AI prompt assistance operations
func chatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "AI assistance for prompts and lyrics",
		Commands: []*cli.Command{
			{
				Name:  "enhance",
				Usage: "Enhance a generation prompt",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "prompt"},
				},
				Action: r.ChatEnhance,
			},
			{
				Name:  "translate",
				Usage: "Translate text to another language",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "language",
						Aliases:  []string{"l"},
						Usage:    "Target language",
						Required: true,
					},
				},
				Action: r.ChatTranslate,
			},
			{
				Name:  "title",
				Usage: "Generate a title from lyrics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lyrics",
						Usage: "Lyrics text",
					},
					&cli.StringFlag{
						Name:  "lyrics-file",
						Usage: "Path to a file containing lyrics",
					},
				},
				Action: r.ChatTitle,
			},
			{
				Name:  "lyrics",
				Usage: "Generate lyrics from a prompt",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "prompt"},
				},
				Action: r.ChatLyrics,
			},
		},
	}
}

// billingCommand shows account credit state
func billingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "billing",
		Usage:  "Show plan and remaining credits",
		Action: r.Billing,
	}
}

// tasksCommand handles the backend task registry
func tasksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Inspect backend generation tasks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List registered tasks",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TasksList,
			},
			{
				Name:  "rm",
				Usage: "Remove a task from the registry",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "task-id"},
				},
				Action: r.TasksDelete,
			},
		},
	}
}

// apiCommand handles direct API calls for diagnostics
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the studio backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive song generation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive song generation TUI",
		Action:  r.TUI,
	}
}
