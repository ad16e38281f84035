package releasenotes

import (
	"context"

	"github.com/cresta/release-publisher/logger"
)

// Generator asks the hosting service to generate release notes for a tag.
type Generator interface {
	GenerateReleaseNotes(ctx context.Context, tag string) (string, error)
}

type Fetcher struct {
	generator Generator
	logger    logger.Logger
}

func NewFetcher(generator Generator, logger logger.Logger) *Fetcher {
	return &Fetcher{
		generator: generator,
		logger:    logger,
	}
}

// Fetch returns the generated notes body for version, or an empty string if
// GitHub could not produce one. Release notes must never block a release.
func (f *Fetcher) Fetch(ctx context.Context, version string) string {
	body, err := f.generator.GenerateReleaseNotes(ctx, version)
	if err != nil {
		f.logger.Warnf("Failed to generate release notes from GitHub: %v", err)
		return ""
	}
	return body
}
