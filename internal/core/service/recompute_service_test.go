package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

func TestRecomputeService_ClampsNegativeScores(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	user := seedUser(users, -12) // incremental path had gone negative
	if _, err := actions.Create(context.Background(), &domain.EcoAction{
		UserID:   user.ID,
		Category: domain.CategoryTravel,
		CarbonKg: 8,
	}); err != nil {
		t.Fatalf("seed action: %v", err)
	}
	svc := NewRecomputeService(users, actions, discardLogger)

	n, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user processed, got %d", n)
	}
	if got := users.byID[user.ID].EcoScore; got != 0 {
		t.Errorf("bulk recompute must clamp at 0, got %v", got)
	}
}

func TestRecomputeService_ZeroActionUsers(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	user := seedUser(users, 42)
	svc := NewRecomputeService(users, actions, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("zero actions must not error: %v", err)
	}
	// Bulk formula ignores the stored score entirely.
	if got := users.byID[user.ID].EcoScore; got != 0 {
		t.Errorf("expected 0 for a user with no actions, got %v", got)
	}
}

func TestRecomputeService_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	user := seedUser(users, 0)
	for i := 0; i < 5; i++ {
		if _, err := actions.Create(context.Background(), &domain.EcoAction{
			UserID:             user.ID,
			Category:           domain.CategoryWaste,
			DisposalMethod:     domain.DisposalRecycled,
			EstimatedSavingsKg: 2,
			CarbonKg:           0.5,
		}); err != nil {
			t.Fatalf("seed action: %v", err)
		}
	}
	svc := NewRecomputeService(users, actions, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	scoreAfterFirst := users.byID[user.ID].EcoScore
	badgesAfterFirst := append([]string(nil), users.byID[user.ID].Badges...)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if users.byID[user.ID].EcoScore != scoreAfterFirst {
		t.Errorf("score changed on rerun: %v -> %v", scoreAfterFirst, users.byID[user.ID].EcoScore)
	}
	if !reflect.DeepEqual(users.byID[user.ID].Badges, badgesAfterFirst) {
		t.Errorf("badges changed on rerun: %v -> %v", badgesAfterFirst, users.byID[user.ID].Badges)
	}

	if badgesAfterFirst[0] != domain.BadgeZeroWaste {
		t.Errorf("expected Zero Waste after recompute, got %v", badgesAfterFirst)
	}
	if scoreAfterFirst != 7.5 {
		t.Errorf("expected score 7.5, got %v", scoreAfterFirst)
	}
}

func TestRecomputeService_ToleratesDuplicateStoredBadges(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	user := users.add(&domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleUser,
		// Hand-edited data can carry duplicates; recompute must survive it.
		Badges: []string{domain.BadgeCommunityHero, domain.BadgeCommunityHero},
	})
	for i := 0; i < 5; i++ {
		if _, err := actions.Create(context.Background(), &domain.EcoAction{
			UserID:         user.ID,
			Category:       domain.CategoryWaste,
			DisposalMethod: domain.DisposalRecycled,
		}); err != nil {
			t.Fatalf("seed action: %v", err)
		}
	}
	svc := NewRecomputeService(users, actions, discardLogger)

	n, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user processed, got %d", n)
	}
	want := []string{domain.BadgeCommunityHero, domain.BadgeZeroWaste}
	if !reflect.DeepEqual(users.byID[user.ID].Badges, want) {
		t.Errorf("expected deduped badge set %v, got %v", want, users.byID[user.ID].Badges)
	}
}

func TestRecomputeService_UnionsExistingBadges(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	user := users.add(&domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleUser,
		Badges:   []string{domain.BadgeCommunityHero},
	})
	svc := NewRecomputeService(users, actions, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Badges are never removed, even when no rule currently matches.
	if !reflect.DeepEqual(users.byID[user.ID].Badges, []string{domain.BadgeCommunityHero}) {
		t.Errorf("existing badges must survive recompute, got %v", users.byID[user.ID].Badges)
	}
}
