package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/identity"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/watch"
)

// AttendanceReader is the slice of the store the tracker needs.
type AttendanceReader interface {
	ListAttendances(ctx context.Context, userID string) ([]*model.AttendanceRecord, error)
}

// Tracker keeps the current user's today-projection and full history as
// observable values. It is the single writer of both; consumers read
// snapshots or subscribe.
type Tracker struct {
	store   AttendanceReader
	ident   identity.Provider
	today   *watch.Value[model.DailyAttendance]
	history *watch.Value[[]*model.AttendanceRecord]
	now     func() time.Time

	mu         sync.Mutex
	lastUserID string
}

func NewTracker(store AttendanceReader, ident identity.Provider) *Tracker {
	t := &Tracker{
		store:      store,
		ident:      ident,
		today:      watch.NewValue(model.DailyAttendance{}),
		history:    watch.NewValue[[]*model.AttendanceRecord](nil),
		now:        time.Now,
		lastUserID: ident.CurrentUserID(),
	}

	// Reload when the authenticated user actually changes; repeated
	// notifications for the same user must not trigger reload storms.
	ident.OnIdentityChange(func(userID string) {
		t.mu.Lock()
		if userID == t.lastUserID {
			t.mu.Unlock()
			return
		}
		t.lastUserID = userID
		t.mu.Unlock()

		if userID == "" {
			t.clear()
			return
		}
		if err := t.Reload(context.Background()); err != nil {
			log.Printf("tracker: reload after identity change: %v", err)
		}
	})

	return t
}

// Reload reads the user's records, splits out today's entrada/salida by
// local calendar date and republishes both projections. With no
// authenticated user, or when the read fails, it publishes empty state.
func (t *Tracker) Reload(ctx context.Context) error {
	userID := t.ident.CurrentUserID()
	if userID == "" {
		t.clear()
		return nil
	}

	records, err := t.store.ListAttendances(ctx, userID)
	if err != nil {
		t.clear()
		return err
	}

	todayStr := t.now().Format(time.DateOnly)
	var day model.DailyAttendance
	for _, r := range records {
		if r.Date != todayStr {
			continue
		}
		switch r.Type {
		case model.TypeEntrada:
			if day.Entrada == nil {
				day.Entrada = r
			}
		case model.TypeSalida:
			if day.Salida == nil {
				day.Salida = r
			}
		}
	}

	t.history.Set(records)
	t.today.Set(day)
	return nil
}

func (t *Tracker) clear() {
	t.today.Set(model.DailyAttendance{})
	t.history.Set(nil)
}

// Today returns the current today-projection snapshot.
func (t *Tracker) Today() model.DailyAttendance {
	return t.today.Get()
}

// History returns the most-recent-first record history snapshot.
func (t *Tracker) History() []*model.AttendanceRecord {
	return t.history.Get()
}

// HistoryBetween filters the history to dates within [from, to], both
// YYYY-MM-DD inclusive; empty bounds are open.
func (t *Tracker) HistoryBetween(from, to string) []*model.AttendanceRecord {
	var out []*model.AttendanceRecord
	for _, r := range t.history.Get() {
		if from != "" && r.Date < from {
			continue
		}
		if to != "" && r.Date > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (t *Tracker) SubscribeToday(fn func(model.DailyAttendance)) {
	t.today.Subscribe(fn)
}

func (t *Tracker) SubscribeHistory(fn func([]*model.AttendanceRecord)) {
	t.history.Subscribe(fn)
}

// CanCheckIn reports whether no entrada exists for today.
func (t *Tracker) CanCheckIn() bool {
	return t.today.Get().Entrada == nil
}

// CanCheckOut reports whether an entrada exists today and no salida does.
func (t *Tracker) CanCheckOut() bool {
	day := t.today.Get()
	return day.Entrada != nil && day.Salida == nil
}
