package booking

import "apnakam/models"

// transitions lists the legal successors of each status. Statuses with no
// entry are terminal.
var transitions = map[models.BookingStatus]map[models.BookingStatus]struct{}{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: {},
		models.BookingStatusCancelled: {},
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCompleted: {},
	},
}

// allowedActors lists which party may drive each edge.
var allowedActors = map[models.BookingStatus]map[models.Party]struct{}{
	models.BookingStatusConfirmed: {models.PartyWorker: {}},
	models.BookingStatusCompleted: {models.PartyCustomer: {}},
	models.BookingStatusCancelled: {models.PartyWorker: {}, models.PartyCustomer: {}},
}

// CanTransition reports whether from -> to is an edge of the state machine.
func CanTransition(from, to models.BookingStatus) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// CanAct reports whether party may move a booking into status to.
func CanAct(party models.Party, to models.BookingStatus) bool {
	actors, ok := allowedActors[to]
	if !ok {
		return false
	}
	_, ok = actors[party]
	return ok
}
