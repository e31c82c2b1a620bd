package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	nextID  int
	listErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	clone := *u
	r.byID[u.ID] = &clone
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) UpdateScoreAndBadges(_ context.Context, id string, ecoScore float64, badges []string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EcoScore = ecoScore
	u.Badges = append([]string(nil), badges...)
	return nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) TopByEcoScore(_ context.Context, limit int) ([]*domain.User, error) {
	all, _ := r.ListAll(context.Background())
	sort.Slice(all, func(i, j int) bool { return all[i].EcoScore > all[j].EcoScore })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type stubActionRepo struct {
	byID   map[string]*domain.EcoAction
	nextID int
}

func newStubActionRepo() *stubActionRepo {
	return &stubActionRepo{byID: make(map[string]*domain.EcoAction)}
}

func (r *stubActionRepo) Create(_ context.Context, action *domain.EcoAction) (*domain.EcoAction, error) {
	r.nextID++
	action.ID = fmt.Sprintf("action_%d", r.nextID)
	clone := *action
	r.byID[action.ID] = &clone
	return action, nil
}

func (r *stubActionRepo) FindByID(_ context.Context, id, userID string) (*domain.EcoAction, error) {
	a, ok := r.byID[id]
	if !ok || (userID != "" && a.UserID != userID) {
		return nil, domain.ErrActionNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubActionRepo) ListByUser(_ context.Context, userID string) ([]domain.EcoAction, error) {
	var out []domain.EcoAction
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubActionRepo) Update(_ context.Context, action *domain.EcoAction) error {
	if _, ok := r.byID[action.ID]; !ok {
		return domain.ErrActionNotFound
	}
	clone := *action
	r.byID[action.ID] = &clone
	return nil
}

func (r *stubActionRepo) Delete(_ context.Context, id, userID string) error {
	a, ok := r.byID[id]
	if !ok || (userID != "" && a.UserID != userID) {
		return domain.ErrActionNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubActionRepo) StatsByUsers(_ context.Context, userIDs []string) (map[string]ports.UserActionStats, error) {
	out := make(map[string]ports.UserActionStats)
	for _, id := range userIDs {
		for _, a := range r.byID {
			if a.UserID != id {
				continue
			}
			st := out[id]
			st.ActionCount++
			st.TotalCarbon += a.CarbonKg
			out[id] = st
		}
	}
	return out, nil
}

type stubReminderRepo struct {
	byID    map[string]*domain.Reminder
	nextID  int
	markErr error
}

func newStubReminderRepo() *stubReminderRepo {
	return &stubReminderRepo{byID: make(map[string]*domain.Reminder)}
}

func (r *stubReminderRepo) Create(_ context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	r.nextID++
	reminder.ID = fmt.Sprintf("reminder_%d", r.nextID)
	clone := *reminder
	r.byID[reminder.ID] = &clone
	return reminder, nil
}

func (r *stubReminderRepo) FindByID(_ context.Context, id, userID string) (*domain.Reminder, error) {
	rem, ok := r.byID[id]
	if !ok || (userID != "" && rem.UserID != userID) {
		return nil, domain.ErrReminderNotFound
	}
	clone := *rem
	return &clone, nil
}

func (r *stubReminderRepo) ListByUser(_ context.Context, userID string) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, rem := range r.byID {
		if rem.UserID == userID {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReminderRepo) ListPendingByUser(_ context.Context, userID string) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, rem := range r.byID {
		if rem.UserID == userID && !rem.Delivered {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *stubReminderRepo) Update(_ context.Context, reminder *domain.Reminder) error {
	if _, ok := r.byID[reminder.ID]; !ok {
		return domain.ErrReminderNotFound
	}
	clone := *reminder
	r.byID[reminder.ID] = &clone
	return nil
}

func (r *stubReminderRepo) Delete(_ context.Context, id, userID string) error {
	rem, ok := r.byID[id]
	if !ok || (userID != "" && rem.UserID != userID) {
		return domain.ErrReminderNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubReminderRepo) ListDue(_ context.Context, now time.Time) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, rem := range r.byID {
		if !rem.Delivered && !rem.DueDate.After(now) {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReminderRepo) MarkDelivered(_ context.Context, id string) error {
	if r.markErr != nil {
		return r.markErr
	}
	rem, ok := r.byID[id]
	if !ok {
		return domain.ErrReminderNotFound
	}
	rem.Delivered = true
	return nil
}

type stubEventRepo struct {
	byID   map[string]*domain.CommunityEvent
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byID: make(map[string]*domain.CommunityEvent)}
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.CommunityEvent) (*domain.CommunityEvent, error) {
	r.nextID++
	event.ID = fmt.Sprintf("event_%d", r.nextID)
	clone := *event
	clone.ParticipantIDs = append([]string(nil), event.ParticipantIDs...)
	r.byID[event.ID] = &clone
	return event, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.CommunityEvent, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	clone.ParticipantIDs = append([]string(nil), e.ParticipantIDs...)
	return &clone, nil
}

func (r *stubEventRepo) List(_ context.Context) ([]domain.CommunityEvent, error) {
	var out []domain.CommunityEvent
	for _, e := range r.byID {
		if e.Status == domain.EventCancelled {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.CommunityEvent) error {
	if _, ok := r.byID[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	clone := *event
	r.byID[event.ID] = &clone
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubEventRepo) AddParticipant(_ context.Context, eventID, userID string) error {
	e, ok := r.byID[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if !e.HasParticipant(userID) {
		e.ParticipantIDs = append(e.ParticipantIDs, userID)
	}
	return nil
}

func (r *stubEventRepo) SetStatus(_ context.Context, eventID string, status domain.EventStatus) error {
	e, ok := r.byID[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.Status = status
	return nil
}

// ---------------------------------------------------------------------------
// Other collaborators
// ---------------------------------------------------------------------------

type stubMailer struct {
	sent    []string // recipient addresses, in send order
	sendErr error
}

func (m *stubMailer) Send(to, _, _ string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to)
	return nil
}

type stubObjectStore struct {
	putKey   string
	putBytes int64
	putErr   error
}

func (s *stubObjectStore) Put(_ context.Context, key string, r io.Reader, size int64, _ string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", err
	}
	s.putKey = key
	s.putBytes = n
	_ = size
	return "https://cdn.example.com/" + key, nil
}

type stubLeaderboardCache struct {
	entries []ports.LeaderboardEntry
	gets    int
	sets    int
}

func (c *stubLeaderboardCache) Get(_ context.Context) ([]ports.LeaderboardEntry, error) {
	c.gets++
	return c.entries, nil
}

func (c *stubLeaderboardCache) Set(_ context.Context, entries []ports.LeaderboardEntry) error {
	c.sets++
	c.entries = entries
	return nil
}
