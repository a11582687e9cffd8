package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/clientdesk/internal/domain"
)

type stubRow struct{ err error }

func (r stubRow) Scan(dest ...any) error { return r.err }

type stubQuerier struct {
	row      pgx.Row
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (q *stubQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	q.lastArgs = args
	return nil, q.queryErr
}

func (q *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	return q.row
}

func TestFilterArgs_DropsUnparseableMinimum(t *testing.T) {
	args := filterArgs(domain.ClientFilter{Status: "active", SearchTerm: "Chen", MinTotalValue: "abc"})
	if args[0] != "active" || args[1] != "Chen" {
		t.Fatalf("unexpected status/search args: %v", args)
	}
	if min, _ := args[2].(*float64); min != nil {
		t.Fatalf("expected nil minimum for malformed input, got %v", *min)
	}
}

func TestFilterArgs_ParsesMinimumAndNormalisesStatus(t *testing.T) {
	args := filterArgs(domain.ClientFilter{Status: "bogus", MinTotalValue: "100"})
	if args[0] != domain.FilterStatusAll {
		t.Fatalf("expected unknown status to become all, got %v", args[0])
	}
	min, _ := args[2].(*float64)
	if min == nil || *min != 100 {
		t.Fatalf("expected minimum 100, got %v", args[2])
	}
}

func TestClientRepositoryGetByID_NotFound(t *testing.T) {
	q := &stubQuerier{row: stubRow{err: pgx.ErrNoRows}}
	repo := NewClientRepository(q)

	_, err := repo.GetByID(context.Background(), "42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(q.lastArgs) != 1 || q.lastArgs[0] != "42" {
		t.Fatalf("expected id to be passed as the only argument, got %v", q.lastArgs)
	}
}

func TestClientRepositoryFilter_WrapsQueryError(t *testing.T) {
	boom := errors.New("connection refused")
	q := &stubQuerier{queryErr: boom}
	repo := NewClientRepository(q)

	_, err := repo.Filter(context.Background(), domain.DefaultClientFilter())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
	if q.lastSQL != filterClientsSQL {
		t.Fatalf("expected filter query to be issued")
	}
}

func TestClientRepositoryGetByIDs_EmptyShortCircuits(t *testing.T) {
	q := &stubQuerier{queryErr: errors.New("should not be called")}
	repo := NewClientRepository(q)

	got, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || q.lastSQL != "" {
		t.Fatalf("expected no query for empty id list")
	}
}

func TestServiceRepositoryGetByID_NotFound(t *testing.T) {
	repo := NewServiceRepository(&stubQuerier{row: stubRow{err: pgx.ErrNoRows}})
	if _, err := repo.GetByID(context.Background(), "s9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProposalRepositoryGetByID_OtherErrorIsNotNotFound(t *testing.T) {
	repo := NewProposalRepository(&stubQuerier{row: stubRow{err: errors.New("timeout")}})
	_, err := repo.GetByID(context.Background(), "p1")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a non-not-found error, got %v", err)
	}
}
