package config

import "errors"

var (
	ErrMissingToken      = errors.New("GITHUB_TOKEN environment variable not set")
	ErrMissingRepository = errors.New("repository owner and name are not configured")
)

type Config struct {
	GithubToken       string
	SlackToken        string
	RepoOwner         string
	RepoName          string
	ChangelogPath     string
	DistDir           string
	BuildCommand      []string
	UploadCommand     []string
	TestRepository    string
	Remote            string
	PushBranch        string // Empty means the repository's default branch
	ExpectedArtifacts int
	APIBaseURL        string // Empty means api.github.com
	GraphQLURL        string
	SlackChannel      string
	SlackAPIURL       string // Empty means slack.com
	SlackUsers        []string
	InGithubActions   bool
	Debug             bool
	Answers           Answers
}

// Answers are preset replies to the interactive questions, used when running
// without a terminal.
type Answers struct {
	TestRelease  string
	Version      string
	ConfirmBuild string
}

func (a Answers) Preset() bool {
	return a.Version != ""
}

// ReleasesURL is where a human can fix up release notes by hand.
func (c Config) ReleasesURL() string {
	return "https://github.com/" + c.RepoOwner + "/" + c.RepoName + "/releases"
}

type UploadTarget int

const (
	UploadTargetProduction UploadTarget = iota
	UploadTargetTest
)

func (u UploadTarget) String() string {
	switch u {
	case UploadTargetProduction:
		return "production"
	case UploadTargetTest:
		return "test"
	default:
		return "unknown"
	}
}
