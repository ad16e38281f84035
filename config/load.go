package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/afero"
)

type env struct {
	GithubToken   string `env:"GITHUB_TOKEN"`
	SlackToken    string `env:"SLACK_TOKEN"`
	ConfigPath    string `env:"RELEASE_CONFIG"`
	Debug         bool   `env:"RELEASE_DEBUG"`
	GithubActions bool   `env:"GITHUB_ACTIONS"`
	TestRelease   string `env:"RELEASE_TEST"`
	Version       string `env:"RELEASE_VERSION"`
	ConfirmBuild  string `env:"RELEASE_CONFIRM_BUILD"`
}

type LoadOptions struct {
	// ConfigPath overrides RELEASE_CONFIG. Either one makes the file required.
	ConfigPath string
	Debug      bool
	Fs         afero.Fs
}

// Load builds the Config from the environment, the optional config file and
// the GitHub Actions context, in that order of precedence for the token and
// the file for everything else.
func Load(ctx context.Context, l envconfig.Lookuper, opts LoadOptions) (Config, error) {
	var e env
	if err := envconfig.ProcessWith(ctx, &e, l); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if e.GithubToken == "" {
		return Config{}, ErrMissingToken
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	path, required := DefaultFile, false
	if e.ConfigPath != "" {
		path, required = e.ConfigPath, true
	}
	if opts.ConfigPath != "" {
		path, required = opts.ConfigPath, true
	}
	f, err := LoadFile(opts.Fs, path, required)
	if err != nil {
		return Config{}, err
	}
	cfg := fromFile(f)
	cfg.GithubToken = e.GithubToken
	cfg.SlackToken = e.SlackToken
	cfg.InGithubActions = e.GithubActions
	cfg.Debug = e.Debug || opts.Debug
	cfg.Answers = Answers{
		TestRelease:  e.TestRelease,
		Version:      e.Version,
		ConfirmBuild: e.ConfirmBuild,
	}
	if cfg.RepoOwner == "" || cfg.RepoName == "" {
		owner, name, err := repoFromGithubActions(NewGithubActions(l))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read github actions context: %w", err)
		}
		cfg.RepoOwner, cfg.RepoName = owner, name
	}
	if cfg.RepoOwner == "" || cfg.RepoName == "" {
		return Config{}, ErrMissingRepository
	}
	return cfg, nil
}

func fromFile(f *File) Config {
	cfg := Config{
		RepoOwner:         f.Repository.Owner,
		RepoName:          f.Repository.Name,
		ChangelogPath:     valueOr(f.Changelog, "CHANGELOG.md"),
		DistDir:           valueOr(f.DistDir, "dist"),
		BuildCommand:      f.Build,
		UploadCommand:     f.Upload,
		TestRepository:    valueOr(f.TestRepository, "testpypi"),
		Remote:            valueOr(f.Remote, "origin"),
		PushBranch:        f.PushBranch,
		ExpectedArtifacts: f.ExpectedArtifacts,
		APIBaseURL:        f.APIBaseURL,
		GraphQLURL:        f.GraphQLURL,
		SlackChannel:      f.Slack.Channel,
		SlackAPIURL:       f.Slack.APIURL,
		SlackUsers:        f.Slack.Users,
	}
	if len(cfg.BuildCommand) == 0 {
		cfg.BuildCommand = []string{"python", "-m", "build"}
	}
	if len(cfg.UploadCommand) == 0 {
		cfg.UploadCommand = []string{"twine", "upload"}
	}
	if cfg.ExpectedArtifacts == 0 {
		// sdist + wheel
		cfg.ExpectedArtifacts = 2
	}
	return cfg
}

func valueOr(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
