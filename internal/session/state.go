package session

// State is a node of the interactive session state machine.
//
//	Onboarding -> MenuIdle
//	MenuIdle   -> MenuIdle | CheckIn | Resources | Progress | Exited
//	CheckIn    -> MenuIdle
//	Resources  -> MenuIdle
//	Progress   -> MenuIdle
//
// End of input moves any state to Exited.
type State int

const (
	Onboarding State = iota
	MenuIdle
	CheckIn
	Resources
	Progress
	Exited
)

var stateNames = [...]string{
	Onboarding: "onboarding",
	MenuIdle:   "menu",
	CheckIn:    "check-in",
	Resources:  "resources",
	Progress:   "progress",
	Exited:     "exited",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// menuChoices maps menu input to the state it selects
var menuChoices = map[string]State{
	"1": CheckIn,
	"2": Resources,
	"3": Progress,
	"4": Exited,
}
