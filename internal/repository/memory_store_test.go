package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/fixtures"
)

func TestMemoryStoreClients(t *testing.T) {
	repos := NewMemoryStore(fixtures.Default()).Repositories()
	ctx := context.Background()

	all, err := repos.Clients.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing clients: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 fixture clients, got %d", len(all))
	}

	client, err := repos.Clients.GetByID(ctx, "3")
	if err != nil {
		t.Fatalf("unexpected error getting client: %v", err)
	}
	if client.Name != "Michael Chen" {
		t.Fatalf("expected Michael Chen, got %s", client.Name)
	}

	if _, err := repos.Clients.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	byIDs, err := repos.Clients.GetByIDs(ctx, []string{"5", "1", "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byIDs) != 2 {
		t.Fatalf("expected 2 clients by id, got %d", len(byIDs))
	}
}

func TestMemoryStoreClientFilterMirrorsPredicate(t *testing.T) {
	repos := NewMemoryStore(fixtures.Default()).Repositories()

	filter := domain.ClientFilter{Status: "active", MinTotalValue: "200000"}
	got, err := repos.Clients.Filter(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "5" {
		t.Fatalf("expected clients 3 and 5, got %+v", got)
	}
}

func TestMemoryStoreListIsCopy(t *testing.T) {
	repos := NewMemoryStore(fixtures.Default()).Repositories()
	ctx := context.Background()

	first, _ := repos.Clients.List(ctx)
	first[0].Name = "mutated"

	second, _ := repos.Clients.List(ctx)
	if second[0].Name == "mutated" {
		t.Fatalf("expected List to return a copy of the dataset")
	}
}

func TestMemoryStoreProposalsAndServices(t *testing.T) {
	repos := NewMemoryStore(fixtures.Default()).Repositories()
	ctx := context.Background()

	proposals, err := repos.Proposals.ListByClient(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proposals) != 1 || proposals[0].ID != "p1" {
		t.Fatalf("expected p1 for client 1, got %+v", proposals)
	}

	if _, err := repos.Proposals.GetByID(ctx, "p9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown proposal, got %v", err)
	}

	svc, err := repos.Services.GetByID(ctx, "s4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Category != domain.ServiceCategoryTraining {
		t.Fatalf("expected training category, got %s", svc.Category)
	}
}
