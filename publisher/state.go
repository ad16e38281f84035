package publisher

import (
	"errors"
	"fmt"

	"github.com/cresta/release-publisher/config"
)

type State int

const (
	StateStart State = iota
	StateTagCreated
	StateDistCleaned
	StateBuildCreated
	StateAwaitingVerification
	StateVerified
	StateRejected
	StateUploaded
	StateTagsPushed
	StateDraftReleaseCreated
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateTagCreated:
		return "TagCreated"
	case StateDistCleaned:
		return "DistCleaned"
	case StateBuildCreated:
		return "BuildCreated"
	case StateAwaitingVerification:
		return "AwaitingVerification"
	case StateVerified:
		return "Verified"
	case StateRejected:
		return "Rejected"
	case StateUploaded:
		return "Uploaded"
	case StateTagsPushed:
		return "TagsPushed"
	case StateDraftReleaseCreated:
		return "DraftReleaseCreated"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrVerificationRejected = errors.New("could not verify, build was not uploaded")
	ErrEmptyVersion         = errors.New("version number must not be empty")
)

const (
	ExitOK                   = 0
	ExitConfig               = 1
	ExitStepFailed           = 2
	ExitVerificationRejected = 3
)

// ExitCode maps the outcome of a release run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrMissingToken), errors.Is(err, config.ErrMissingRepository):
		return ExitConfig
	case errors.Is(err, ErrVerificationRejected):
		return ExitVerificationRejected
	default:
		return ExitStepFailed
	}
}

// Release is what every step needs to know about the release in progress.
type Release struct {
	Version string
	Target  config.UploadTarget
	Token   string
}
