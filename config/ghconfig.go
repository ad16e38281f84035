package config

import (
	"github.com/sethvargo/go-envconfig"
	"github.com/sethvargo/go-githubactions"
)

func NewGithubActions(l envconfig.Lookuper) *githubactions.Action {
	return githubactions.New(githubactions.WithGetenv(func(key string) string {
		v, _ := l.Lookup(key)
		return v
	}))
}

// repoFromGithubActions reads owner/name from GITHUB_REPOSITORY. Both are
// empty outside of a workflow run.
func repoFromGithubActions(action *githubactions.Action) (string, string, error) {
	ghCtx, err := action.Context()
	if err != nil {
		return "", "", err
	}
	owner, name := ghCtx.Repo()
	return owner, name, nil
}
