package invite

import "fmt"

// State is a step of the landing flow
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateTokenPending    State = "token_pending"
	StateRegistering     State = "registering"
	StateAutoLogin       State = "auto_login"
	StateAuthenticated   State = "authenticated"
	StateRejected        State = "rejected"
	StateExhausted       State = "exhausted"
)

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateAuthenticated || s == StateRejected || s == StateExhausted
}

// Trigger moves the flow between states
type Trigger string

const (
	TriggerTokenReceived Trigger = "token_received"
	TriggerTokenUnknown  Trigger = "token_unknown"
	TriggerInviteUnused  Trigger = "invite_unused"
	TriggerInviteUsed    Trigger = "invite_used"
	TriggerRaceLost      Trigger = "race_lost"
	TriggerLimitExceeded Trigger = "limit_exceeded"
	TriggerSessionIssued Trigger = "session_issued"
)

// Machine holds the legal transitions of the landing flow
type Machine struct {
	transitions map[State]map[Trigger]State
}

// NewMachine returns the landing flow state machine
func NewMachine() *Machine {
	return &Machine{transitions: map[State]map[Trigger]State{
		StateUnauthenticated: {
			TriggerTokenReceived: StateTokenPending,
		},
		StateTokenPending: {
			TriggerTokenUnknown: StateRejected,
			TriggerInviteUnused: StateRegistering,
			TriggerInviteUsed:   StateAutoLogin,
		},
		StateRegistering: {
			TriggerRaceLost:      StateAutoLogin,
			TriggerLimitExceeded: StateExhausted,
			TriggerSessionIssued: StateAuthenticated,
		},
		StateAutoLogin: {
			TriggerLimitExceeded: StateExhausted,
			TriggerSessionIssued: StateAuthenticated,
		},
	}}
}

// Transition returns the state reached from `from` on trigger, or an error if illegal
func (m *Machine) Transition(from State, trigger Trigger) (State, error) {
	to, ok := m.transitions[from][trigger]
	if !ok {
		return from, fmt.Errorf(ErrMsgIllegalTransitionFmt, from, trigger)
	}
	return to, nil
}

// flow tracks one walk through the machine
type flow struct {
	machine *Machine
	state   State
}

func (m *Machine) start() *flow {
	return &flow{machine: m, state: StateUnauthenticated}
}

func (f *flow) fire(trigger Trigger) error {
	next, err := f.machine.Transition(f.state, trigger)
	if err != nil {
		return err
	}
	f.state = next
	return nil
}
