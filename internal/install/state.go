package install

// State is the stage an installation is in.
type State int

const (
	Idle State = iota
	Fetching
	ResolvingDependencies
	AwaitingConfirmation
	InstallingExtensions
	InstallingAssets
	Reporting
	Failed
)

var stateNames = [...]string{
	Idle:                  "idle",
	Fetching:              "fetching",
	ResolvingDependencies: "resolving dependencies",
	AwaitingConfirmation:  "awaiting confirmation",
	InstallingExtensions:  "installing extensions",
	InstallingAssets:      "installing assets",
	Reporting:             "reporting",
	Failed:                "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
