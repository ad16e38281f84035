package announce

import (
	"context"
	"fmt"

	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/logger"
	"github.com/cresta/release-publisher/stringhelper"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackutilsx"
)

type SlackAnnouncer struct {
	client  *slack.Client
	channel string
	logger  logger.Logger
}

var _ Announcer = (*SlackAnnouncer)(nil)

func NewSlackAnnouncer(cfg config.Config, logger logger.Logger, options ...slack.Option) (*SlackAnnouncer, error) {
	ret := slack.New(cfg.SlackToken, options...)
	at, err := ret.AuthTest()
	if err != nil {
		return nil, fmt.Errorf("failed to auth test: %w", err)
	}
	logger.Debugf("Slack auth test: %+v", at)
	return &SlackAnnouncer{
		client:  ret,
		channel: cfg.SlackChannel,
		logger:  logger,
	}, nil
}

func (s *SlackAnnouncer) Announce(ctx context.Context, a Announcement) error {
	s.logger.Infof("Announcing release %s in %s", a.Version, s.channel)
	a.Users = stringhelper.RemoveEmptyAndDeduplicate(a.Users)
	userMap := s.mapOfUsersByEmail(ctx, a.Users)
	_, _, err := s.client.PostMessageContext(ctx, s.channel, createSlackMessage(a, userMap), slack.MsgOptionDisableLinkUnfurl(), slack.MsgOptionText(headerText(a), false))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", s.channel, err)
	}
	return nil
}

func (s *SlackAnnouncer) mapOfUsersByEmail(ctx context.Context, users []string) map[string]*slack.User {
	ret := make(map[string]*slack.User)
	for _, user := range users {
		u, err := s.client.GetUserByEmailContext(ctx, user)
		if err != nil {
			s.logger.Debugf("failed to get user by email %s: %v", user, err)
			continue
		}
		ret[user] = u
	}
	return ret
}

func headerText(a Announcement) string {
	if a.TestRelease {
		return fmt.Sprintf("Draft test release %s created", a.Version)
	}
	return fmt.Sprintf("Draft release %s created", a.Version)
}

func createSlackMessage(a Announcement, userMap map[string]*slack.User) slack.MsgOption {
	var blocks []slack.Block
	// https://api.slack.com/reference/block-kit/composition-objects#text
	blocks = append(blocks,
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText(a), false, false)),
	)
	target := "production index"
	if a.TestRelease {
		target = "test index"
	}
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Repository:*\n%s", slackutilsx.EscapeMessage(a.Repository)), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Uploaded to:*\n%s", target), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	if a.ReleaseURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("<%s|Review and publish the draft>", a.ReleaseURL), false, false),
			nil, nil,
		))
	}
	if len(a.Users) > 0 {
		header := slack.NewTextBlockObject("mrkdwn", "*Reviewers:*", false, false)
		userTextBlocks := make([]*slack.TextBlockObject, 0, len(a.Users))
		for _, user := range a.Users {
			userText := slackutilsx.EscapeMessage(user)
			if u, ok := userMap[user]; ok {
				userText = fmt.Sprintf("<@%s|%s>", u.ID, slackutilsx.EscapeMessage(u.Name))
			}
			userTextBlocks = append(userTextBlocks, slack.NewTextBlockObject("mrkdwn", userText, false, false))
		}
		blocks = append(blocks, slack.NewSectionBlock(header, userTextBlocks, nil))
	}
	return slack.MsgOptionBlocks(blocks...)
}
