package workers

import (
	"context"
	"log/slog"
	"time"

	application "civica/contexts/election-operations/election-service/application"
	"civica/contexts/election-operations/election-service/domain/entities"
	"civica/contexts/election-operations/election-service/ports"
)

// StatusReconciler nudges stale administrative statuses forward once their
// schedule windows pass: upcoming becomes registration, and either becomes
// active when voting opens. It never completes or cancels an election, and
// it is an operational convenience only; vote casting re-checks both the
// window and the status on every ballot.
type StatusReconciler struct {
	Elections ports.ElectionRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r StatusReconciler) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	advanced := 0
	for _, status := range []entities.Status{entities.StatusUpcoming, entities.StatusRegistration} {
		stale, _, err := r.Elections.ListElections(ctx, ports.ListFilter{
			Status: status,
			Page:   1,
			Limit:  limit,
		})
		if err != nil {
			logger.Error("election reconcile list failed",
				"event", "election_reconcile_list_failed",
				"module", "election-operations/election-service",
				"layer", "worker",
				"status", string(status),
				"error", err.Error(),
			)
			return err
		}
		for _, election := range stale {
			target := targetStatus(election, now)
			if target == election.Status {
				continue
			}
			election.Status = target
			election.UpdatedAt = now
			if err := r.Elections.SaveElection(ctx, election); err != nil {
				logger.Error("election reconcile save failed",
					"event", "election_reconcile_save_failed",
					"module", "election-operations/election-service",
					"layer", "worker",
					"election_id", election.ElectionID,
					"error", err.Error(),
				)
				return err
			}
			logger.Info("election status advanced",
				"event", "election_status_advanced",
				"module", "election-operations/election-service",
				"layer", "worker",
				"election_id", election.ElectionID,
				"status", string(target),
			)
			advanced++
		}
	}

	if advanced > 0 {
		logger.Info("election reconcile cycle completed",
			"event", "election_reconcile_completed",
			"module", "election-operations/election-service",
			"layer", "worker",
			"advanced_count", advanced,
		)
	}
	return nil
}

// targetStatus maps the schedule onto the forward status an operator would
// have set by hand. Past voting open the election stays active until results
// are declared, even after the window closes.
func targetStatus(election entities.Election, now time.Time) entities.Status {
	switch {
	case !now.Before(election.VotingStart):
		return entities.StatusActive
	case !now.Before(election.RegistrationStart):
		return entities.StatusRegistration
	default:
		return election.Status
	}
}
