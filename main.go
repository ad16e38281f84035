package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cresta/release-publisher/announce"
	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/ghclient"
	"github.com/cresta/release-publisher/logger"
	"github.com/cresta/release-publisher/prompt"
	"github.com/cresta/release-publisher/publisher"
	"github.com/cresta/release-publisher/releasenotes"
	"github.com/cresta/release-publisher/shell"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

const exitInterrupted = 130

var moduleMainSetup = fx.Module("main-setup", fx.Options(
	fx.Provide(
		newAction,
		ghclient.New,
		releasenotes.NewFetcher,
		fx.Annotate(releasenotes.NewBuilder, fx.As(new(publisher.NotesBuilder))),
		publisher.New,
		announce.New,
		notesGenerator,
		releaseCreator,
		branchResolver,
	),
	fx.Invoke(func(*Action) {}),
))

func notesGenerator(c *ghclient.GhClient) releasenotes.Generator { return c }

func releaseCreator(c *ghclient.GhClient) publisher.ReleaseCreator { return c }

func branchResolver(c *ghclient.GhClient) publisher.BranchResolver { return c }

// environment is everything the process takes from the outside world.
type environment struct {
	env    envconfig.Lookuper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	runner shell.Runner
}

func main() {
	os.Exit(run(os.Args[1:], environment{
		env:    envconfig.OsLookuper(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     afero.NewOsFs(),
		runner: shell.NewExecRunner(os.Stdin, os.Stdout, os.Stderr),
	}))
}

func run(args []string, e environment) int {
	flags := pflag.NewFlagSet("release-publisher", pflag.ContinueOnError)
	flags.SetOutput(e.stderr)
	configPath := flags.String("config", "", "release config file (default "+config.DefaultFile+")")
	debug := flags.Bool("debug", false, "print debug output")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return publisher.ExitOK
		}
		_, _ = fmt.Fprintln(e.stderr, err)
		return publisher.ExitConfig
	}

	_, _ = fmt.Fprintln(e.stdout, "Starting the release process...")
	_, _ = fmt.Fprintln(e.stdout, "Checking for GITHUB_TOKEN environment variable...")
	cfg, err := config.Load(context.Background(), e.env, config.LoadOptions{
		ConfigPath: *configPath,
		Debug:      *debug,
		Fs:         e.fs,
	})
	if err != nil {
		_, _ = fmt.Fprintln(e.stderr, err)
		return publisher.ExitConfig
	}
	_, _ = fmt.Fprintln(e.stdout, "GITHUB_TOKEN environment variable is good to go.")

	log := newLogger(cfg, e)
	return runApp(log,
		fx.Supply(cfg),
		fx.Provide(
			func() logger.Logger { return log },
			func() afero.Fs { return e.fs },
			func() shell.Runner { return e.runner },
			func() prompt.Provider { return newPrompts(cfg, e) },
		),
		moduleMainSetup,
	)
}

func newLogger(cfg config.Config, e environment) logger.Logger {
	if cfg.InGithubActions {
		return logger.NewGhLogger(config.NewGithubActions(e.env))
	}
	return logger.NewConsoleLogger(e.stdout, e.stderr, cfg.Debug)
}

func newPrompts(cfg config.Config, e environment) prompt.Provider {
	if cfg.Answers.Preset() {
		return prompt.NewScripted(cfg.Answers.TestRelease, cfg.Answers.Version, cfg.Answers.ConfirmBuild)
	}
	return prompt.NewConsole(e.stdin, e.stdout)
}

// runApp runs the fx application until the Action shuts it down, and returns
// the exit code the Action asked for.
func runApp(log logger.Logger, opts ...fx.Option) int {
	app := fx.New(append([]fx.Option{fx.WithLogger(logger.NewFxLogger)}, opts...)...)
	if err := app.Err(); err != nil {
		log.Errorf("Failed to set up release: %v", err)
		return publisher.ExitStepFailed
	}
	done := app.Wait()
	startCtx, cancelStart := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Errorf("Failed to start: %v", err)
		return publisher.ExitStepFailed
	}
	sig := <-done
	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		log.Errorf("Failed to stop: %v", err)
	}
	if sig.Signal == os.Interrupt {
		return exitInterrupted
	}
	return sig.ExitCode
}
