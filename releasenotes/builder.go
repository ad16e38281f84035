package releasenotes

import (
	"context"

	"github.com/cresta/release-publisher/changelog"
	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/logger"
	"github.com/spf13/afero"
)

// Builder assembles the final release notes from the changelog and the notes
// GitHub generates. Every failure along the way degrades to empty text plus a
// warning telling the operator what to fix by hand.
type Builder struct {
	fetcher *Fetcher
	fs      afero.Fs
	cfg     config.Config
	logger  logger.Logger
}

func NewBuilder(cfg config.Config, fetcher *Fetcher, fs afero.Fs, logger logger.Logger) *Builder {
	return &Builder{
		fetcher: fetcher,
		fs:      fs,
		cfg:     cfg,
		logger:  logger,
	}
}

func (b *Builder) Build(ctx context.Context, version string) string {
	body := b.fetcher.Fetch(ctx, version)
	comparisonURL, ok := ParseComparisonLink(body)
	if !ok {
		b.logger.Warnf("Failed to parse release notes URL from GitHub response.")
	}
	section := b.changelogSection(version, comparisonURL)
	return Compose(section, comparisonURL)
}

func (b *Builder) changelogSection(version string, comparisonURL string) string {
	doc, err := changelog.Load(b.fs, b.cfg.ChangelogPath)
	if err != nil {
		b.logger.Warnf("%v. Manually copy this version's notes to %s.", err, b.manualEditTarget(comparisonURL))
		return ""
	}
	section, found := changelog.Extract(doc, version)
	if !found {
		b.logger.Warnf("Failed to parse changelog release notes. Manually copy this version's notes from the %s file to %s.", b.cfg.ChangelogPath, b.manualEditTarget(comparisonURL))
		return ""
	}
	return section
}

// manualEditTarget falls back to the releases page when GitHub gave us no
// comparison link either.
func (b *Builder) manualEditTarget(comparisonURL string) string {
	if comparisonURL != "" {
		return comparisonURL
	}
	return b.cfg.ReleasesURL()
}
