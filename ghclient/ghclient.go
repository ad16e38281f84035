package ghclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cresta/release-publisher/config"
	"github.com/cresta/release-publisher/logger"
	"github.com/google/go-github/v57/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

type GhClient struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	cfg           config.Config
	logger        logger.Logger
}

func New(cfg config.Config, logger logger.Logger) (*GhClient, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.GithubToken},
	)
	httpClient := oauth2.NewClient(context.Background(), ts)
	restClient := github.NewClient(httpClient)
	if cfg.APIBaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.APIBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse api base url %s: %w", cfg.APIBaseURL, err)
		}
		restClient.BaseURL = baseURL
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if cfg.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(cfg.GraphQLURL, httpClient)
	}
	return &GhClient{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		cfg:           cfg,
		logger:        logger,
	}, nil
}

func (g *GhClient) GenerateReleaseNotes(ctx context.Context, tag string) (string, error) {
	g.logger.Debugf("generating release notes for %s", tag)
	notes, _, err := g.restClient.Repositories.GenerateReleaseNotes(ctx, g.cfg.RepoOwner, g.cfg.RepoName, &github.GenerateNotesOptions{
		TagName: tag,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate release notes for tag %s: %w", tag, err)
	}
	return notes.Body, nil
}

type DraftRelease struct {
	TagName string
	Name    string
	Body    string
}

// CreateDraftRelease creates an unpublished, non-prerelease release and
// returns its html url.
func (g *GhClient) CreateDraftRelease(ctx context.Context, release DraftRelease) (string, error) {
	g.logger.Debugf("creating draft release %s", release.TagName)
	created, _, err := g.restClient.Repositories.CreateRelease(ctx, g.cfg.RepoOwner, g.cfg.RepoName, &github.RepositoryRelease{
		TagName:    github.String(release.TagName),
		Name:       github.String(release.Name),
		Body:       github.String(release.Body),
		Draft:      github.Bool(true),
		Prerelease: github.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release %s: %w", release.TagName, err)
	}
	return created.GetHTMLURL(), nil
}

func (g *GhClient) DefaultBranch(ctx context.Context) (string, error) {
	var query struct {
		Repository struct {
			DefaultBranchRef struct {
				Name githubv4.String
			}
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(g.cfg.RepoOwner),
		"name":  githubv4.String(g.cfg.RepoName),
	}
	if err := g.graphqlClient.Query(ctx, &query, variables); err != nil {
		return "", fmt.Errorf("failed to query default branch of %s/%s: %w", g.cfg.RepoOwner, g.cfg.RepoName, err)
	}
	branch := string(query.Repository.DefaultBranchRef.Name)
	if branch == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", g.cfg.RepoOwner, g.cfg.RepoName)
	}
	g.logger.Debugf("default branch of %s/%s: %s", g.cfg.RepoOwner, g.cfg.RepoName, branch)
	return branch, nil
}
