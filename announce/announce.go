package announce

import (
	"context"
	"strings"

	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/logger"
	"github.com/slack-go/slack"
)

type Announcement struct {
	Version     string
	ReleaseURL  string
	Repository  string
	TestRelease bool
	Users       []string // Emails of people to mention
}

type Announcer interface {
	Announce(ctx context.Context, a Announcement) error
}

type Nop struct{}

func (Nop) Announce(context.Context, Announcement) error {
	return nil
}

// New returns a Slack announcer when a token and channel are configured, and a
// no-op otherwise. A failing Slack auth test is logged and also yields a no-op.
func New(cfg config.Config, logger logger.Logger) Announcer {
	if cfg.SlackToken == "" || cfg.SlackChannel == "" {
		logger.Debugf("Slack is not configured, releases will not be announced")
		return Nop{}
	}
	var options []slack.Option
	if cfg.SlackAPIURL != "" {
		options = append(options, slack.OptionAPIURL(strings.TrimSuffix(cfg.SlackAPIURL, "/")+"/"))
	}
	ret, err := NewSlackAnnouncer(cfg, logger, options...)
	if err != nil {
		logger.Warnf("Slack is configured but unusable, the release will not be announced: %v", err)
		return Nop{}
	}
	return ret
}
