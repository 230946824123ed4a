package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"civica/contexts/election-operations/election-service/domain/entities"
	domainerrors "civica/contexts/election-operations/election-service/domain/errors"
	"civica/contexts/election-operations/election-service/domain/services"
	"civica/contexts/election-operations/election-service/ports"
)

// ElectionView pairs the stored election with its derived phase so readers
// never have to re-derive it.
type ElectionView struct {
	Election entities.Election
	Phase    services.Phase
}

// ResultRow is one tabulated candidate line for the results view.
type ResultRow struct {
	CandidateID string
	FullName    string
	Party       string
	Votes       int64
	Percentage  float64
}

type ElectionQueries struct {
	Elections ports.ElectionRepository
	Tallies   ports.TallyReader
	Clock     ports.Clock
}

func (q ElectionQueries) Get(ctx context.Context, electionID string) (ElectionView, error) {
	election, err := q.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return ElectionView{}, err
	}
	return ElectionView{
		Election: election,
		Phase:    services.CurrentPhase(election, q.now()),
	}, nil
}

func (q ElectionQueries) List(ctx context.Context, filter ports.ListFilter) ([]ElectionView, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	elections, total, err := q.Elections.ListElections(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := q.now()
	views := make([]ElectionView, 0, len(elections))
	for _, election := range elections {
		views = append(views, ElectionView{
			Election: election,
			Phase:    services.CurrentPhase(election, now),
		})
	}
	return views, total, nil
}

// ByPhase filters on the derived phase, which cannot be pushed into the
// store because it is a function of the clock.
func (q ElectionQueries) ByPhase(ctx context.Context, phase services.Phase) ([]ElectionView, error) {
	if !services.IsValidPhase(phase) {
		return nil, domainerrors.ErrInvalidElectionInput
	}
	elections, _, err := q.Elections.ListElections(ctx, ports.ListFilter{Limit: 100, Page: 1})
	if err != nil {
		return nil, err
	}
	now := q.now()
	var views []ElectionView
	for _, election := range elections {
		if current := services.CurrentPhase(election, now); current == phase {
			views = append(views, ElectionView{Election: election, Phase: current})
		}
	}
	return views, nil
}

// Results tabulates the ledger on demand: per-candidate valid-vote counts
// sorted descending with percentage of total and turnout.
func (q ElectionQueries) Results(ctx context.Context, electionID string) (ElectionView, []ResultRow, error) {
	view, err := q.Get(ctx, electionID)
	if err != nil {
		return ElectionView{}, nil, err
	}
	tallies, err := q.Tallies.CountValidVotesByCandidate(ctx, view.Election.ElectionID)
	if err != nil {
		return ElectionView{}, nil, err
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Votes > tallies[j].Votes
	})
	var total int64
	for _, tally := range tallies {
		total += tally.Votes
	}
	rows := make([]ResultRow, 0, len(tallies))
	for _, tally := range tallies {
		row := ResultRow{
			CandidateID: tally.CandidateID,
			FullName:    tally.FullName,
			Party:       tally.Party,
			Votes:       tally.Votes,
		}
		if total > 0 {
			row.Percentage = float64(tally.Votes) / float64(total) * 100
		}
		rows = append(rows, row)
	}
	return view, rows, nil
}

func (q ElectionQueries) now() time.Time {
	now := time.Now().UTC()
	if q.Clock != nil {
		now = q.Clock.Now().UTC()
	}
	return now
}
