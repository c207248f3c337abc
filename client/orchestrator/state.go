package orchestrator

// State represents a run step
type State int

const (
	Start State = iota
	DiscoveryDone
	TokenDone
	ApiCallDone
	Finished
	Aborted
)

var stateNames = map[State]string{
	Start:         "Start",
	DiscoveryDone: "DiscoveryDone",
	TokenDone:     "TokenDone",
	ApiCallDone:   "ApiCallDone",
	Finished:      "Finished",
	Aborted:       "Aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal returns true for Finished and Aborted
func (s State) IsTerminal() bool {
	return s == Finished || s == Aborted
}
