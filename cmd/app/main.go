package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/mdbook-hidebuild/internal"
	pkgconfig "github.com/starford/mdbook-hidebuild/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func preprocess(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("preprocess: %w", err)
	}
	return nil
}

// supports answers mdBook's renderer handshake. Every renderer is supported.
func supports(_ context.Context, _ *cli.Command) error {
	return nil
}

func check(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	req := internal.CheckRequest{
		Src:     cmd.String("src"),
		Summary: cmd.String("summary"),
		Watch:   cmd.Bool("watch"),
	}
	if err := internal.Check(ctx, req, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "mdbook-hidebuild",
		Usage:  "mdBook preprocessor that builds documents missing from SUMMARY.md and adds an ALL PAGES index",
		Action: preprocess,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "hidebuild.yaml",
				Value:       "hidebuild.yaml",
				Sources:     cli.EnvVars("HIDEBUILD_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "supports",
				Usage:     "Report whether a renderer is supported (always yes)",
				ArgsUsage: "<renderer>",
				Action:    supports,
			},
			{
				Name:   "check",
				Usage:  "List documents under the source directory that SUMMARY.md does not reference",
				Action: check,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "src",
						Usage: "Book source directory",
						Value: "src",
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "Summary file, relative to --src",
						Value: "SUMMARY.md",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "Re-run the check whenever a document changes",
					},
				},
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
