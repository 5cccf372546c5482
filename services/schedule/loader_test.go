// File: services/schedule/loader_test.go
package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	scheduleRepo "studiobook/database/repository/schedule"
	"studiobook/models"
	"studiobook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loaderClock = utils.NewStudioClock("IST", 330)

type fakeSub struct {
	updates chan models.DaySchedule
	err     error

	mu           sync.Mutex
	unsubscribed bool
}

func newFakeSub() *fakeSub {
	return &fakeSub{updates: make(chan models.DaySchedule, 8)}
}

func (s *fakeSub) Updates() <-chan models.DaySchedule { return s.updates }
func (s *fakeSub) Err() error                         { return s.err }

func (s *fakeSub) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unsubscribed {
		s.unsubscribed = true
		close(s.updates)
	}
}

func (s *fakeSub) isUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

func (s *fakeSub) push(sched models.DaySchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unsubscribed {
		s.updates <- sched
	}
}

type fakeScheduleRepo struct {
	mu       sync.Mutex
	subs     map[string][]*fakeSub
	watchErr error
	docs     map[string]*models.DaySchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		subs: make(map[string][]*fakeSub),
		docs: make(map[string]*models.DaySchedule),
	}
}

func (r *fakeScheduleRepo) Get(ctx context.Context, weekday string) (*models.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[weekday], nil
}

func (r *fakeScheduleRepo) Watch(ctx context.Context, weekday string) (scheduleRepo.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watchErr != nil {
		return nil, r.watchErr
	}
	sub := newFakeSub()
	r.subs[weekday] = append(r.subs[weekday], sub)
	return sub, nil
}

func (r *fakeScheduleRepo) subFor(weekday string, i int) *fakeSub {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[weekday][i]
}

func (r *fakeScheduleRepo) subCount(weekday string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[weekday])
}

func daySched(ids ...string) models.DaySchedule {
	slots := map[string]models.Slot{}
	remaining := map[string]int{}
	for i, id := range ids {
		slots[id] = models.Slot{
			Name:      id,
			Type:      models.SlotTypeReformer,
			StartTime: time.Date(2026, 1, 1, 6+i, 0, 0, 0, time.UTC).Format("15:04"),
			EndTime:   time.Date(2026, 1, 1, 7+i, 0, 0, 0, time.UTC).Format("15:04"),
			Active:    true,
		}
		remaining[id] = 4
	}
	return models.DaySchedule{Slots: slots, RemainingSlots: remaining}
}

func recvView(t *testing.T, l *Loader) models.ScheduleView {
	t.Helper()
	select {
	case v := <-l.Updates():
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for schedule view")
		return models.ScheduleView{}
	}
}

func TestLoaderDeliversViews(t *testing.T) {
	repo := newFakeScheduleRepo()
	l := NewLoader(repo, loaderClock)
	defer l.Close()

	// 2026-09-07 is a Monday.
	require.NoError(t, l.Select(context.Background(), "2026-09-07"))
	require.Equal(t, 1, repo.subCount("Mon"))

	repo.subFor("Mon", 0).push(daySched("a", "b"))
	view := recvView(t, l)
	assert.Equal(t, "2026-09-07", view.Date)
	assert.Equal(t, "Mon", view.Weekday)
	assert.Len(t, view.Slots, 2)
}

func TestLoaderSupersedesOldSelection(t *testing.T) {
	repo := newFakeScheduleRepo()
	l := NewLoader(repo, loaderClock)
	defer l.Close()

	require.NoError(t, l.Select(context.Background(), "2026-09-07")) // Mon
	oldSub := repo.subFor("Mon", 0)

	require.NoError(t, l.Select(context.Background(), "2026-09-08")) // Tue
	assert.True(t, oldSub.isUnsubscribed(), "previous subscription must be torn down")

	// A stale update racing through the old subscription must never surface.
	repo.subFor("Tue", 0).push(daySched("tue-slot"))
	view := recvView(t, l)
	assert.Equal(t, "2026-09-08", view.Date)
	assert.Equal(t, "Tue", view.Weekday)
}

func TestLoaderReplacesQueuedStaleView(t *testing.T) {
	repo := newFakeScheduleRepo()
	l := NewLoader(repo, loaderClock)
	defer l.Close()

	require.NoError(t, l.Select(context.Background(), "2026-09-07"))
	sub := repo.subFor("Mon", 0)
	sub.push(daySched("first"))
	sub.push(daySched("first", "second"))

	// Give the forwarder time to process both; the consumer only sees the
	// freshest queued view.
	require.Eventually(t, func() bool {
		select {
		case v := <-l.Updates():
			return len(v.Slots) == 2
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestLoaderWatchFailureDegradesToEmptyView(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.watchErr = errors.New("stream refused")
	l := NewLoader(repo, loaderClock)
	defer l.Close()

	require.NoError(t, l.Select(context.Background(), "2026-09-07"))
	view := recvView(t, l)
	assert.Empty(t, view.Slots)
	assert.False(t, view.StudioClosed)
	assert.Equal(t, "2026-09-07", view.Date)
}

func TestLoaderRejectsMalformedDate(t *testing.T) {
	l := NewLoader(newFakeScheduleRepo(), loaderClock)
	defer l.Close()
	assert.Error(t, l.Select(context.Background(), "not-a-date"))
}

func TestLoaderCloseUnsubscribes(t *testing.T) {
	repo := newFakeScheduleRepo()
	l := NewLoader(repo, loaderClock)

	require.NoError(t, l.Select(context.Background(), "2026-09-07"))
	sub := repo.subFor("Mon", 0)
	l.Close()
	assert.True(t, sub.isUnsubscribed())

	_, open := <-l.Updates()
	assert.False(t, open, "updates channel closes with the loader")
}
