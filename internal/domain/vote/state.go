package vote

// Kind tags the lifecycle stage of a (player, race) vote.
type Kind int

const (
	KindUnset Kind = iota
	KindOpen
	KindLocked
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindLocked:
		return "locked"
	default:
		return "unset"
	}
}

// Mutation is the store write a transition requires.
type Mutation int

const (
	MutationNone Mutation = iota
	MutationInsert
	MutationUpdate
)

// State is the lifecycle of one (player, race) vote: Unset, Open(rider) or Locked(rider).
type State struct {
	kind    Kind
	riderID int64
}

func Unset() State { return State{kind: KindUnset} }

func Open(riderID int64) State { return State{kind: KindOpen, riderID: riderID} }

func Locked(riderID int64) State { return State{kind: KindLocked, riderID: riderID} }

// StateOf derives the lifecycle state from a stored vote lookup.
func StateOf(item Vote, exists bool) State {
	switch {
	case !exists:
		return Unset()
	case item.IsLocked:
		return Locked(item.RiderID)
	default:
		return Open(item.RiderID)
	}
}

func (s State) Kind() Kind { return s.kind }

func (s State) RiderID() int64 { return s.riderID }

// Picks reports whether the state currently holds riderID.
func (s State) Picks(riderID int64) bool {
	return s.kind != KindUnset && s.riderID == riderID
}

// Transition is the outcome of applying a pick to a state.
type Transition struct {
	From     State
	Next     State
	Mutation Mutation
}

// Cast applies a pick. A first pick opens the vote, repeating the open pick
// changes nothing, and a different pick replaces the rider and locks the
// vote. Locked votes reject every pick.
func (s State) Cast(riderID int64) (Transition, error) {
	switch s.kind {
	case KindUnset:
		return Transition{From: s, Next: Open(riderID), Mutation: MutationInsert}, nil
	case KindOpen:
		if s.riderID == riderID {
			return Transition{From: s, Next: s, Mutation: MutationNone}, nil
		}
		return s.change(riderID), nil
	default:
		return Transition{From: s, Next: s}, ErrLocked
	}
}

func (s State) change(riderID int64) Transition {
	return Transition{From: s, Next: Locked(riderID), Mutation: MutationUpdate}
}

// Record renders the next state as a stored vote.
func (t Transition) Record(playerID, raceID int64) Vote {
	return Vote{
		PlayerID: playerID,
		RaceID:   raceID,
		RiderID:  t.Next.riderID,
		IsLocked: t.Next.kind == KindLocked,
	}
}
