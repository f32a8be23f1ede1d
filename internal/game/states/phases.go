package states

import "fmt"

// GamePhase represents the current phase of a match
type GamePhase int

const (
	// PhaseInitializing - World built, no player has control yet
	PhaseInitializing GamePhase = iota

	// PhaseAwaitingTurn - Control is being handed to the next player
	PhaseAwaitingTurn

	// PhaseInTurn - The current player may select, buy, place and undo
	PhaseInTurn

	// PhaseTurnEnding - Economy, vegetation and victory are resolved
	PhaseTurnEnding

	// PhaseGameOver - A single player owns every hex
	PhaseGameOver
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseAwaitingTurn:
		return "AwaitingTurn"
	case PhaseInTurn:
		return "InTurn"
	case PhaseTurnEnding:
		return "TurnEnding"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanReceiveActions returns true if the arbiter accepts player operations in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseInTurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseAwaitingTurn}
	case PhaseAwaitingTurn:
		return []GamePhase{PhaseInTurn, PhaseGameOver}
	case PhaseInTurn:
		return []GamePhase{PhaseTurnEnding, PhaseAwaitingTurn}
	case PhaseTurnEnding:
		return []GamePhase{PhaseAwaitingTurn, PhaseGameOver}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "AwaitingTurn":
		return PhaseAwaitingTurn
	case "InTurn":
		return PhaseInTurn
	case "TurnEnding":
		return PhaseTurnEnding
	case "GameOver":
		return PhaseGameOver
	default:
		return PhaseInitializing
	}
}
