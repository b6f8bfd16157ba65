package traveller

import (
	"context"
	"errors"
	"testing"

	travellerrepo "github.com/janisto/travel-profiles/internal/repository/traveller"
)

func newService() (*Manager, *travellerrepo.MockRepository) {
	repo := travellerrepo.NewMockRepository()
	repo.OwnerExists = func(id int64) bool { return id == 1 || id == 2 }
	return NewManager(repo), repo
}

func TestAddTrimsName(t *testing.T) {
	svc, _ := newService()
	got, err := svc.Add(context.Background(), &Traveller{CustomerID: 1, AdditionalName: "  Bob  "})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.AdditionalID == 0 || got.AdditionalName != "Bob" {
		t.Fatalf("unexpected traveller: %+v", got)
	}
}

func TestAddValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	tests := []struct {
		name string
		in   *Traveller
		want error
	}{
		{"nil", nil, ErrInvalidData},
		{"blank name", &Traveller{CustomerID: 1, AdditionalName: "   "}, ErrInvalidData},
		{"no owner", &Traveller{AdditionalName: "Bob"}, ErrInvalidData},
		{"unknown owner", &Traveller{CustomerID: 9, AdditionalName: "Bob"}, ErrOwnerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateLocatesByPayloadID(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	added, err := svc.Add(ctx, &Traveller{CustomerID: 1, AdditionalName: "Bob"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, 777, &Traveller{AdditionalID: added.AdditionalID, CustomerID: 2, AdditionalName: "Robert"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AdditionalID != added.AdditionalID || updated.CustomerID != 2 || updated.AdditionalName != "Robert" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(ctx, 1, &Traveller{AdditionalID: 999, CustomerID: 1, AdditionalName: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, 1, &Traveller{AdditionalID: added.AdditionalID, CustomerID: 1}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestListByCustomerAndDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	a, _ := svc.Add(ctx, &Traveller{CustomerID: 1, AdditionalName: "A"})
	_, _ = svc.Add(ctx, &Traveller{CustomerID: 2, AdditionalName: "B"})
	_, _ = svc.Add(ctx, &Traveller{CustomerID: 1, AdditionalName: "C"})

	mine, err := svc.ListByCustomer(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 travellers for customer 1, got %d", len(mine))
	}
	for _, tr := range mine {
		if tr.CustomerID != 1 {
			t.Fatalf("foreign traveller in result: %+v", tr)
		}
	}
	all, _ := svc.List(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 travellers, got %d", len(all))
	}

	removed, err := svc.Delete(ctx, a.AdditionalID)
	if err != nil || removed.AdditionalName != "A" {
		t.Fatalf("Delete = %+v, %v", removed, err)
	}
	if _, err := svc.Get(ctx, a.AdditionalID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Delete(ctx, a.AdditionalID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCategorizeError(t *testing.T) {
	if categorizeError(ErrOwnerNotFound) != "owner_not_found" {
		t.Fatal("owner_not_found expected")
	}
	if categorizeError(errors.New("x")) != "internal_error" {
		t.Fatal("internal_error expected")
	}
}
