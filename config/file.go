package config

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

const DefaultFile = ".release.yaml"

type File struct {
	Repository struct {
		Owner string `yaml:"owner,omitempty"`
		Name  string `yaml:"name,omitempty"`
	} `yaml:"repository,omitempty"`
	Changelog         string   `yaml:"changelog,omitempty"`
	DistDir           string   `yaml:"distDir,omitempty"`
	Build             []string `yaml:"build,omitempty"`
	Upload            []string `yaml:"upload,omitempty"`
	TestRepository    string   `yaml:"testRepository,omitempty"`
	Remote            string   `yaml:"remote,omitempty"`
	PushBranch        string   `yaml:"pushBranch,omitempty"`
	ExpectedArtifacts int      `yaml:"expectedArtifacts,omitempty"`
	APIBaseURL        string   `yaml:"apiBaseURL,omitempty"`
	GraphQLURL        string   `yaml:"graphqlURL,omitempty"`
	Slack             struct {
		Channel string   `yaml:"channel,omitempty"`
		APIURL  string   `yaml:"apiURL,omitempty"`
		Users   []string `yaml:"users,omitempty"`
	} `yaml:"slack,omitempty"`
}

// LoadFile reads a release config file. A missing file is only an error when
// required is set.
func LoadFile(fs afero.Fs, path string, required bool) (*File, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var ret File
	if err := yaml.Unmarshal(b, &ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file %s as yaml: %w", path, err)
	}
	return &ret, nil
}
