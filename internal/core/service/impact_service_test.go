package service

import (
	"context"
	"testing"
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
)

func TestImpactService_ZeroActions(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	reminders := newStubReminderRepo()
	user := seedUser(users, 0)
	svc := NewImpactService(actions, users, reminders, discardLogger)

	summary, err := svc.Summary(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("zero actions must not error: %v", err)
	}
	if summary.TotalCarbon != 0 || summary.TotalSavings != 0 {
		t.Errorf("expected zero totals, got %v / %v", summary.TotalCarbon, summary.TotalSavings)
	}
	if len(summary.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %v", summary.Breakdown)
	}
	if len(summary.Severity) != 0 {
		t.Errorf("expected empty severity map, got %v", summary.Severity)
	}
}

func TestImpactService_AggregatesByCategoryAndSeverity(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	reminders := newStubReminderRepo()
	user := seedUser(users, 0)
	svc := NewImpactService(actions, users, reminders, discardLogger)

	seed := []domain.EcoAction{
		{UserID: user.ID, Category: domain.CategoryFood, CarbonKg: 2, EstimatedSavingsKg: 1, Severity: domain.SeverityLow},
		{UserID: user.ID, Category: domain.CategoryFood, CarbonKg: 3, Severity: domain.SeverityHigh},
		{UserID: user.ID, Category: domain.CategoryTravel, CarbonKg: 1.5, EstimatedSavingsKg: 4, Severity: domain.SeverityHigh},
	}
	for i := range seed {
		if _, err := actions.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed action: %v", err)
		}
	}

	summary, err := svc.Summary(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCarbon != 6.5 {
		t.Errorf("expected total_carbon 6.5, got %v", summary.TotalCarbon)
	}
	if summary.TotalSavings != 5 {
		t.Errorf("expected total_savings 5, got %v", summary.TotalSavings)
	}
	if summary.Breakdown["food"] != 5 || summary.Breakdown["travel"] != 1.5 {
		t.Errorf("unexpected breakdown: %v", summary.Breakdown)
	}
	if _, ok := summary.Breakdown["waste"]; ok {
		t.Error("breakdown must only contain categories with actions")
	}
	if summary.Severity["high"] != 2 || summary.Severity["low"] != 1 {
		t.Errorf("unexpected severity counts: %v", summary.Severity)
	}
}

func TestImpactService_PendingRemindersSortedByDueDate(t *testing.T) {
	users := newStubUserRepo()
	actions := newStubActionRepo()
	reminders := newStubReminderRepo()
	user := seedUser(users, 0)
	svc := NewImpactService(actions, users, reminders, discardLogger)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	later := domain.Reminder{UserID: user.ID, ActionID: "a", Message: "later", DueDate: base.AddDate(0, 0, 7)}
	sooner := domain.Reminder{UserID: user.ID, ActionID: "a", Message: "sooner", DueDate: base}
	delivered := domain.Reminder{UserID: user.ID, ActionID: "a", Message: "done", DueDate: base, Delivered: true}
	for _, r := range []*domain.Reminder{&later, &sooner, &delivered} {
		if _, err := reminders.Create(context.Background(), r); err != nil {
			t.Fatalf("seed reminder: %v", err)
		}
	}

	summary, err := svc.Summary(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Reminders) != 2 {
		t.Fatalf("expected 2 pending reminders, got %d", len(summary.Reminders))
	}
	if summary.Reminders[0].Message != "sooner" || summary.Reminders[1].Message != "later" {
		t.Errorf("reminders not sorted by due date: %v", summary.Reminders)
	}
}
