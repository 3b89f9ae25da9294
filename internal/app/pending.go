package app

import "fmt"

// deleteState is the lifecycle position of a task that a delete intent
// refers to.
type deleteState int

const (
	deleteLive deleteState = iota
	deletePendingRemoval
	deleteRemoved
)

func (s deleteState) String() string {
	switch s {
	case deleteLive:
		return "LIVE"
	case deletePendingRemoval:
		return "PENDING_REMOVAL"
	case deleteRemoved:
		return "REMOVED"
	default:
		return fmt.Sprintf("deleteState(%d)", int(s))
	}
}

// pendingDeletes tracks every task with an outstanding delete timer.
// Tasks absent from the map are live.
type pendingDeletes map[string]deleteState

func (p pendingDeletes) state(id string) deleteState {
	if s, ok := p[id]; ok {
		return s
	}
	return deleteLive
}

// transition moves id from one state to another. It changes the map only
// when the transition is valid. Settled tasks are dropped from the map.
func (p pendingDeletes) transition(id string, from, to deleteState) error {
	cur := p.state(id)
	if cur != from {
		return fmt.Errorf("invalid transition for %q: expected %s, got %s", id, from, cur)
	}
	if !isAllowedDeleteTransition(from, to) {
		return fmt.Errorf("disallowed transition for %q: %s -> %s", id, from, to)
	}
	if to == deletePendingRemoval {
		p[id] = to
	} else {
		delete(p, id)
	}
	return nil
}

func isAllowedDeleteTransition(from, to deleteState) bool {
	switch from {
	case deleteLive:
		return to == deletePendingRemoval
	case deletePendingRemoval:
		return to == deleteRemoved || to == deleteLive
	default:
		return false
	}
}

func (p pendingDeletes) mark(id string) error {
	return p.transition(id, deleteLive, deletePendingRemoval)
}

func (p pendingDeletes) commit(id string) error {
	return p.transition(id, deletePendingRemoval, deleteRemoved)
}

func (p pendingDeletes) cancel(id string) error {
	return p.transition(id, deletePendingRemoval, deleteLive)
}
