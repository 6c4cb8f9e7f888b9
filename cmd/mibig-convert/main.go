package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/mibig-secmet/bgconvert/internal"
	"github.com/mibig-secmet/bgconvert/internal/validation"
	pkgconfig "github.com/mibig-secmet/bgconvert/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected <input> and <output> arguments")
	}

	cfg := internal.NewDefaultConfig()
	if configPath := cmd.String("config"); configPath != "" {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithPaths(cmd.Args().Get(0), cmd.Args().Get(1)),
	}

	return internal.Run(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:      "mibig-convert",
		Usage:     "Convert MIBiG v3 entries to the v4 schema",
		ArgsUsage: "<input> <output>",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("BGCONVERT_CONFIG_FILE"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			for _, violation := range validationErr.Violations {
				fmt.Fprintln(os.Stderr, violation.String())
			}
		} else {
			slog.Error("conversion error", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}
