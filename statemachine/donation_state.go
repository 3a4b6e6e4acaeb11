package statemachine

import (
	"errors"

	"github.com/KESA-RIKIN/zero-hunger-platform/models"
)

// Actors that may drive a donation through its lifecycle. Receivers book a
// donation without changing its status, so every status edge belongs to the
// coordinator transporting it.
const (
	ActorCoordinator = "coordinator"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor string
}

// validTransitions is the authoritative state machine definition. Status only
// ever advances created → assigned → picked_up → delivered; there is no
// cancellation edge and delivered is terminal.
var validTransitions = []Transition{
	// Coordinator accepts the delivery
	{From: models.StatusCreated, To: models.StatusAssigned, Actor: ActorCoordinator},
	// Coordinator collects the food from the donor
	{From: models.StatusAssigned, To: models.StatusPickedUp, Actor: ActorCoordinator},
	// Coordinator hands the food to the receiver
	{From: models.StatusPickedUp, To: models.StatusDelivered, Actor: ActorCoordinator},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.DonationStatus) []models.DonationStatus {
	var nexts []models.DonationStatus
	seen := map[models.DonationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.DonationStatus, actor string) error {
	// Old records may still carry the legacy "available" status
	if from == models.StatusAvailable {
		from = models.StatusCreated
	}
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.DonationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() []Transition {
	return validTransitions
}
