package controller

import "fmt"

// State is the request state of the dashboard. Exactly one is active at a time.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

var stateNames = [...]string{
	StateIdle:    "idle",
	StateLoading: "loading",
	StateSuccess: "success",
	StateError:   "error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}
