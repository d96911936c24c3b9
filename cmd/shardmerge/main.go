package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/shardmerge/internal/cliconfig"
	"github.com/bft-labs/shardmerge/pkg/log"
	"github.com/bft-labs/shardmerge/pkg/shardmerge"
)

const helpDescription = `
Combine a numbered set of .safetensors shards into a single file.

Given the first shard (e.g. unet-00001-of-00003.safetensors), every
contiguous sibling in the same directory is loaded in order and merged.
When two shards carry the same tensor name the later shard wins.

Highlights:
  - Shards are memory-mapped; with --purge-shard (default) each one is
    released as soon as it has been merged.
  - A shard that fails to load is skipped with an error; use --strict to
    abort instead.
  - The output is written to a temp file and renamed into place.
  - Configure via flags, SHARDMERGE_* env vars, or $HOME/.shardmerge/config.toml.

Exit codes:
  0 success            4 no tensors merged
  1 other error        5 write failed
  2 no shards found    6 shard failed in --strict mode
  3 output exists
`

var exampleUsage = strings.TrimSpace(`
  shardmerge --first-shard ./unet/diffusion_pytorch_model-00001-of-00003.safetensors
  shardmerge --first-shard model-00001-of-00004.safetensors --output-model-name merged --overwrite
  shardmerge --first-shard model-00001-of-00002.safetensors --purge-shard=false --strict
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	c := &cli{
		cfg:    cliconfig.DefaultConfig(),
		stderr: stderr,
		logger: cliconfig.Logger(stderr, "info"),
	}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stderr)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("shardmerge")
	}
	return exitCode(err)
}

type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	stderr  io.Writer
	logger  zerolog.Logger
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "shardmerge",
		Short:         "Combine numbered .safetensors shards into a single file",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if err := c.loadConfig(changed); err != nil {
				return err
			}
			return c.merge(cmd.Context())
		},
	}

	cfg := &c.cfg
	root.Flags().StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.shardmerge/config.toml)")
	root.Flags().StringVar(&cfg.FirstShard, "first-shard", cfg.FirstShard, "path of the first shard (<prefix>-00001-of-NNNNN.<ext>)")
	root.Flags().StringVar(&cfg.OutputModelName, "output-model-name", cfg.OutputModelName, "output base name (default: first shard name without the shard suffix)")
	root.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for the merged file (default: current directory)")
	root.Flags().BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "replace the output file if it exists")
	root.Flags().BoolVar(&cfg.PurgeShard, "purge-shard", cfg.PurgeShard, "release each shard from memory after merging it")
	root.Flags().BoolVar(&cfg.Strict, "strict", cfg.Strict, "abort when a shard fails to load instead of skipping it")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	return root
}

// loadConfig layers defaults, config file, SHARDMERGE_* env vars and flags.
func (c *cli) loadConfig(changed map[string]bool) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cliconfig.ApplyFileConfig(&c.cfg, fc, changed)
	} else if c.cfgPath != "" {
		return fmt.Errorf("load config: %s: %w", c.cfgPath, os.ErrNotExist)
	}

	// These override file config but are overridden by flags (checked via changed map)
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}
	c.logger = cliconfig.Logger(c.stderr, c.cfg.LogLevel)

	if err := cliconfig.ResolveShardInfo(&c.cfg); err != nil {
		return err
	}
	c.logger.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func (c *cli) merge(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			c.logger.Info().Msg("received signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	c.logger.Info().
		Str("first_shard", c.cfg.FirstShard).
		Str("output", c.cfg.OutputPath).
		Bool("purge", c.cfg.PurgeShard).
		Msg("merging shards")

	report, err := shardmerge.Run(ctx, shardmerge.Config{
		FirstShard: c.cfg.FirstShard,
		SearchDir:  c.cfg.SearchDir,
		OutputPath: c.cfg.OutputPath,
		Overwrite:  c.cfg.Overwrite,
		Purge:      c.cfg.PurgeShard,
		Strict:     c.cfg.Strict,
	}, shardmerge.WithLogger(log.NewZerologAdapterWithLogger(c.logger)))
	if err != nil {
		return err
	}

	c.logger.Info().
		Str("output", report.OutputPath).
		Int("shards", report.Loaded).
		Int("tensors", report.Tensors).
		Str("size", humanize.IBytes(uint64(report.BytesWritten))).
		Dur("took", report.Duration).
		Msg("model combined successfully")
	if !report.Complete() {
		c.logger.Warn().
			Int("failed", len(report.Failures)).
			Int("declared", report.DeclaredTotal()).
			Int("discovered", len(report.Shards)).
			Msg("merged model may be incomplete, re-run after fixing the missing shards")
	}
	return nil
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, shardmerge.ErrNoShards):
		return 2
	case errors.Is(err, shardmerge.ErrOutputExists):
		return 3
	case errors.Is(err, shardmerge.ErrNothingMerged):
		return 4
	case errors.Is(err, shardmerge.ErrWrite):
		return 5
	case errors.Is(err, shardmerge.ErrShardLoad):
		return 6
	default:
		return 1
	}
}
