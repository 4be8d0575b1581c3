package events

import "github.com/Crax-AI/crax.app/internal/models"

const targetOperator = "operator"

// OperatorLogin records a successful operator token issuance.
func (e *Emitter) OperatorLogin(username string) {
	if e == nil {
		return
	}

	e.Emit(models.Event{
		Action: "operator.login",

		ActorRole: ActorOperator,
		ActorID:   username,

		TargetType: targetOperator,
		TargetID:   username,
	})
}

// ProjectsSynced records a GitHub project import run by an operator.
func (e *Emitter) ProjectsSynced(operator, username string, synced int) {
	if e == nil {
		return
	}

	e.Emit(models.Event{
		Action: "projects.synced",

		ActorRole: ActorOperator,
		ActorID:   operator,

		TargetType: "profile",
		TargetID:   username,

		Props: map[string]any{
			"projects_synced": synced,
		},
	})
}
