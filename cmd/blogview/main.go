package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/blogview/internal"
	pkgconfig "github.com/starford/blogview/pkg/config"
)

// version is set at build time.
var version = "dev"

func options(cmd *cli.Command) ([]internal.Option, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOrDefault(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return []internal.Option{
		internal.WithConfig(cfg),
	}, nil
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: json, html or text",
		Value: internal.FormatText,
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print blog posts, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Posts per page (default from config)"},
			&cli.IntFlag{Name: "offset", Usage: "Posts to skip"},
			&cli.StringFlag{Name: "category", Usage: "Exact category"},
			&cli.StringFlag{Name: "tag", Usage: "Tag filter"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Case-insensitive text search"},
			&cli.BoolFlag{Name: "all", Usage: "Keep loading more until every post is shown"},
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return internal.ListPosts(ctx, os.Stdout, internal.ListParams{
				Limit:    int(cmd.Int("limit")),
				Offset:   int(cmd.Int("offset")),
				Category: cmd.String("category"),
				Tag:      cmd.String("tag"),
				Search:   cmd.String("search"),
				All:      cmd.Bool("all"),
				Format:   cmd.String("format"),
			}, opts...)
		},
	}
}

func tagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "Print tags ranked by frequency",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max", Usage: "Tags shown before show-more (default from config)"},
			&cli.BoolFlag{Name: "all", Usage: "Show more until every tag is shown"},
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return internal.ListTags(ctx, os.Stdout, internal.TagParams{
				Max:    int(cmd.Int("max")),
				All:    cmd.Bool("all"),
				Format: cmd.String("format"),
			}, opts...)
		},
	}
}

func postCommand() *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "Print the header of one post",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Post path in the index, e.g. /blog/hello-world"},
			&cli.StringFlag{Name: "body", Usage: "Authored Markdown file whose frontmatter and body refine the header"},
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return internal.ShowPost(ctx, os.Stdout, internal.PostParams{
				Path:     cmd.String("path"),
				BodyFile: cmd.String("body"),
				Format:   cmd.String("format"),
			}, opts...)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx, opts...); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the MCP tools on stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return internal.RunMCP(ctx, version, opts...)
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Render the listing and tag cloud into a directory on every index change",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "Output directory", Value: "public"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return internal.Watch(ctx, cmd.String("out"), opts...)
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "blogview",
		Usage:   "Query, page and render the blog posts of a site's content index",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			tagsCommand(),
			postCommand(),
			serveCommand(),
			mcpCommand(),
			watchCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
