package inventory

import "fmt"

// serialTransitions lists every allowed serial move and the ledger action it records.
//
//	in_stock    -> issued       ISSUE
//	issued      -> in_stock     RETURN
//	issued      -> lost         LOST
//	issued      -> maintenance  MAINTENANCE
//	issued      -> cleaning     CLEANING
//	maintenance -> in_stock     RETURN
//	cleaning    -> in_stock     RETURN
var serialTransitions = map[SerialStatus]map[SerialStatus]Action{
	SerialInStock: {
		SerialIssued: ActionIssue,
	},
	SerialIssued: {
		SerialInStock:     ActionReturn,
		SerialLost:        ActionLost,
		SerialMaintenance: ActionMaintenance,
		SerialCleaning:    ActionCleaning,
	},
	SerialMaintenance: {
		SerialInStock: ActionReturn,
	},
	SerialCleaning: {
		SerialInStock: ActionReturn,
	},
}

// Transition validates from -> to and returns the action to append.
func Transition(from, to SerialStatus) (Action, error) {
	action, ok := serialTransitions[from][to]
	if !ok {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidSerialState, from, to)
	}
	return action, nil
}

// IssueTransition moves an in-stock unit to issued.
func IssueTransition(from SerialStatus) (Action, error) {
	return Transition(from, SerialIssued)
}

// ReturnTransition moves an issued unit back to one of the return targets.
func ReturnTransition(from, target SerialStatus) (Action, error) {
	if from != SerialIssued {
		return "", fmt.Errorf("%w: unit is %s, not issued", ErrInvalidSerialState, from)
	}
	return Transition(from, target)
}

// ServiceDoneTransition puts a unit back in stock after maintenance or cleaning.
func ServiceDoneTransition(from SerialStatus) (Action, error) {
	if from != SerialMaintenance && from != SerialCleaning {
		return "", fmt.Errorf("%w: unit is %s, not in service", ErrInvalidSerialState, from)
	}
	return Transition(from, SerialInStock)
}

// ReturnTargets are the states a serial return may request.
var ReturnTargets = []string{
	string(SerialInStock), string(SerialLost), string(SerialMaintenance), string(SerialCleaning),
}
