// Package synccontroller reconciles remote fetch/delete outcomes with operator
// feedback: notifications, state resets and list refreshes.
package synccontroller

import (
	"go-orderdesk/internal/orderdesk/syncstate"
)

const DeletedMessage = "Order Deleted Successfully!"

type Phase int

const (
	Idle Phase = iota
	ErrorPending
	DeletedPending
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case ErrorPending:
		return "error-pending"
	case DeletedPending:
		return "deleted-pending"
	}
	return "unknown"
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectNotifyError
	EffectNotifyDeleted
	EffectFetchAll
)

// Effect is the single side effect of a reconciliation pass.
type Effect struct {
	Kind    EffectKind
	Message string
}

type Transition struct {
	Next   Phase
	Effect Effect
}

// Reconcile decides the next phase and side effect for state. Error wins over
// deletion, deletion wins over fetching. A notification that is already
// pending acknowledgement is not raised again.
func Reconcile(phase Phase, state syncstate.State) Transition {
	switch {
	case state.Error != "":
		if phase == ErrorPending {
			return Transition{Next: ErrorPending}
		}
		return Transition{
			Next:   ErrorPending,
			Effect: Effect{Kind: EffectNotifyError, Message: state.Error},
		}
	case state.Deleted:
		if phase == DeletedPending {
			return Transition{Next: DeletedPending}
		}
		return Transition{
			Next:   DeletedPending,
			Effect: Effect{Kind: EffectNotifyDeleted, Message: DeletedMessage},
		}
	default:
		return Transition{
			Next:   Idle,
			Effect: Effect{Kind: EffectFetchAll},
		}
	}
}

// relevant reports whether the change from prev to next should trigger a
// reconciliation pass. Order list updates alone do not.
func relevant(prev, next syncstate.State) bool {
	return prev.Error != next.Error || prev.Deleted != next.Deleted
}
