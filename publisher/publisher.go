package publisher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cresta/release-publisher/announce"
	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/ghclient"
	"github.com/cresta/release-publisher/logger"
	"github.com/cresta/release-publisher/prompt"
	"github.com/cresta/release-publisher/releasenotes"
	"github.com/cresta/release-publisher/shell"
	"github.com/spf13/afero"
)

type NotesBuilder interface {
	Build(ctx context.Context, version string) string
}

type ReleaseCreator interface {
	CreateDraftRelease(ctx context.Context, release ghclient.DraftRelease) (string, error)
}

type BranchResolver interface {
	DefaultBranch(ctx context.Context) (string, error)
}

// Publisher tags, builds, uploads and drafts a GitHub release, one step after
// the other. Any failing external command stops the run.
type Publisher struct {
	cfg       config.Config
	runner    shell.Runner
	fs        afero.Fs
	prompts   prompt.Provider
	notes     NotesBuilder
	releases  ReleaseCreator
	branches  BranchResolver
	announcer announce.Announcer
	logger    logger.Logger
	state     State
}

func New(cfg config.Config, runner shell.Runner, fs afero.Fs, prompts prompt.Provider, notes NotesBuilder, releases ReleaseCreator, branches BranchResolver, announcer announce.Announcer, logger logger.Logger) *Publisher {
	return &Publisher{
		cfg:       cfg,
		runner:    runner,
		fs:        fs,
		prompts:   prompts,
		notes:     notes,
		releases:  releases,
		branches:  branches,
		announcer: announcer,
		logger:    logger,
		state:     StateStart,
	}
}

func (p *Publisher) State() State {
	return p.state
}

func (p *Publisher) Run(ctx context.Context) error {
	rel, err := p.collectRelease(ctx)
	if err != nil {
		return err
	}
	steps := []struct {
		done State
		run  func(ctx context.Context, rel Release) error
	}{
		{StateTagCreated, p.addGitTag},
		{StateDistCleaned, p.removePreviousDist},
		{StateBuildCreated, p.createBuild},
		{StateVerified, p.verifyBuild},
		{StateUploaded, p.uploadBuild},
		{StateTagsPushed, p.pushGitTags},
	}
	for _, step := range steps {
		if err := step.run(ctx, rel); err != nil {
			return err
		}
		p.transition(step.done)
	}
	p.createDraftRelease(ctx, rel)
	p.transition(StateDone)
	return nil
}

func (p *Publisher) transition(to State) {
	p.logger.Debugf("release state: %s -> %s", p.state, to)
	p.state = to
}

func (p *Publisher) collectRelease(ctx context.Context) (Release, error) {
	isTest, err := prompt.AskChoice(ctx, p.prompts, "Is this a test release? (y/n): ", []string{"y", "n"}, func(string) {
		p.logger.Infof("Invalid input. Please enter 'y' or 'n'.")
	})
	if err != nil {
		return Release{}, fmt.Errorf("failed to ask for release type: %w", err)
	}
	version, err := p.prompts.Ask(ctx, "Enter the version number: ")
	if err != nil {
		return Release{}, fmt.Errorf("failed to ask for version: %w", err)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return Release{}, ErrEmptyVersion
	}
	if _, err := semver.StrictNewVersion(version); err != nil {
		p.logger.Warnf("Version %q is not a semantic version: %v", version, err)
	}
	rel := Release{
		Version: version,
		Target:  config.UploadTargetProduction,
		Token:   p.cfg.GithubToken,
	}
	if isTest == "y" {
		rel.Target = config.UploadTargetTest
	}
	return rel, nil
}

func (p *Publisher) addGitTag(ctx context.Context, rel Release) error {
	if err := p.runner.Run(ctx, "git", "tag", "-a", rel.Version, "-m", rel.Version); err != nil {
		return fmt.Errorf("failed to add git tag for version %s: %w", rel.Version, err)
	}
	p.logger.Infof("Version %s tag added successfully.", rel.Version)
	return nil
}

func (p *Publisher) removePreviousDist(_ context.Context, _ Release) error {
	if err := p.fs.RemoveAll(p.cfg.DistDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", p.cfg.DistDir, err)
	}
	p.logger.Infof("Previous %s folder removed successfully.", p.cfg.DistDir)
	return nil
}

func (p *Publisher) createBuild(ctx context.Context, _ Release) error {
	cmd := p.cfg.BuildCommand
	if err := p.runner.Run(ctx, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("failed to create build: %w", err)
	}
	p.logger.Infof("Build created successfully.")
	return nil
}

func (p *Publisher) verifyBuild(ctx context.Context, _ Release) error {
	artifacts, err := p.artifacts()
	if err != nil {
		return err
	}
	if len(artifacts) != p.cfg.ExpectedArtifacts {
		p.logger.Warnf("%s folder contains incorrect number of files: expected %d, found %d.", p.cfg.DistDir, p.cfg.ExpectedArtifacts, len(artifacts))
	}
	p.logger.Infof("Contents of %s folder:", p.cfg.DistDir)
	if err := p.runner.Run(ctx, "ls", "-l", p.cfg.DistDir); err != nil {
		return fmt.Errorf("failed to list build artifacts: %w", err)
	}
	p.logger.Infof("Contents of archives in %s folder:", p.cfg.DistDir)
	for _, artifact := range artifacts {
		name, args := listArchiveCommand(artifact)
		if err := p.runner.Run(ctx, name, args...); err != nil {
			return fmt.Errorf("failed to list contents of %s: %w", artifact, err)
		}
	}
	p.transition(StateAwaitingVerification)
	answer, err := p.prompts.Ask(ctx, "Does the build look correct? (y/n): ")
	if err != nil {
		return fmt.Errorf("failed to ask for build verification: %w", err)
	}
	if answer != "y" {
		p.transition(StateRejected)
		return ErrVerificationRejected
	}
	p.logger.Infof("Build verified successfully.")
	return nil
}

// artifacts lists the files in the dist directory, sorted by name.
func (p *Publisher) artifacts() ([]string, error) {
	infos, err := afero.ReadDir(p.fs, p.cfg.DistDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.cfg.DistDir, err)
	}
	ret := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ret = append(ret, filepath.Join(p.cfg.DistDir, info.Name()))
	}
	return ret, nil
}

// listArchiveCommand picks a lister that understands the archive format.
// Wheels are zip files, which GNU tar cannot read.
func listArchiveCommand(path string) (string, []string) {
	switch filepath.Ext(path) {
	case ".whl", ".zip", ".egg":
		return "unzip", []string{"-l", path}
	default:
		return "tar", []string{"tvf", path}
	}
}

func (p *Publisher) uploadBuild(ctx context.Context, rel Release) error {
	artifacts, err := p.artifacts()
	if err != nil {
		return err
	}
	cmd := p.cfg.UploadCommand
	args := append([]string{}, cmd[1:]...)
	if rel.Target == config.UploadTargetTest {
		args = append(args, "--repository", p.cfg.TestRepository)
	}
	args = append(args, artifacts...)
	if err := p.runner.Run(ctx, cmd[0], args...); err != nil {
		return fmt.Errorf("failed to upload build to %s index: %w", rel.Target, err)
	}
	p.logger.Infof("Build uploaded to %s index.", rel.Target)
	return nil
}

func (p *Publisher) pushGitTags(ctx context.Context, _ Release) error {
	branch := p.cfg.PushBranch
	if branch == "" {
		var err error
		branch, err = p.branches.DefaultBranch(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve branch to push: %w", err)
		}
	}
	if err := p.runner.Run(ctx, "git", "push", "--tags", p.cfg.Remote, branch); err != nil {
		return fmt.Errorf("failed to push git tags: %w", err)
	}
	p.logger.Infof("Git tags pushed to %s %s.", p.cfg.Remote, branch)
	return nil
}

// createDraftRelease never fails the run: the package is already public at
// this point, and a missing draft can be created by hand.
func (p *Publisher) createDraftRelease(ctx context.Context, rel Release) {
	notes := p.notes.Build(ctx, rel.Version)
	p.logger.Debugf("release notes payload: %s", releasenotes.EscapeForTransport(notes))
	htmlURL, err := p.releases.CreateDraftRelease(ctx, ghclient.DraftRelease{
		TagName: rel.Version,
		Name:    rel.Version,
		Body:    notes,
	})
	if err != nil {
		p.logger.Warnf("Failed to create release on GitHub: %v. Create it by hand at %s.", err, p.cfg.ReleasesURL())
		return
	}
	p.transition(StateDraftReleaseCreated)
	p.logger.Infof("Release created successfully: %s", htmlURL)
	err = p.announcer.Announce(ctx, announce.Announcement{
		Version:     rel.Version,
		ReleaseURL:  htmlURL,
		Repository:  p.cfg.RepoOwner + "/" + p.cfg.RepoName,
		TestRelease: rel.Target == config.UploadTargetTest,
		Users:       p.cfg.SlackUsers,
	})
	if err != nil {
		p.logger.Warnf("Failed to announce release: %v", err)
	}
}
