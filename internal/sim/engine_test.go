package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	emails    []string
	emailsErr error

	devices    map[string][]Device
	devicesErr map[string]error

	thresholds map[string]int

	bills         map[string]*Bill
	notifications []Notification

	inserts int
	updates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		devices:    map[string][]Device{},
		devicesErr: map[string]error{},
		thresholds: map[string]int{},
		bills:      map[string]*Bill{},
	}
}

func billKey(email, month string, year int) string {
	return fmt.Sprintf("%s|%s|%d", email, month, year)
}

func (s *fakeStore) ListHouseholds(context.Context) ([]string, error) {
	return s.emails, s.emailsErr
}

func (s *fakeStore) ListDevices(_ context.Context, email string) ([]Device, error) {
	if err := s.devicesErr[email]; err != nil {
		return nil, err
	}
	return s.devices[email], nil
}

func (s *fakeStore) GetThreshold(_ context.Context, email string) (int, bool, error) {
	t, ok := s.thresholds[email]
	return t, ok, nil
}

func (s *fakeStore) FindBill(_ context.Context, email, month string, year int) (*Bill, error) {
	b, ok := s.bills[billKey(email, month, year)]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) InsertBill(_ context.Context, b Bill) error {
	s.inserts++
	cp := b
	s.bills[billKey(b.Email, b.Month, b.Year)] = &cp
	return nil
}

func (s *fakeStore) UpdateBillFigures(_ context.Context, email, month string, year int, units, amount float64, generatedAt time.Time) error {
	s.updates++
	b, ok := s.bills[billKey(email, month, year)]
	if !ok {
		return errors.New("no such bill")
	}
	b.Units, b.Amount, b.GeneratedAt = units, amount, generatedAt
	return nil
}

func (s *fakeStore) FindUnpaidBill(_ context.Context, email, excludeMonth string) (*Bill, error) {
	for _, b := range s.bills {
		if b.Email == email && b.Status == BillUnpaid && b.Month != excludeMonth {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) InsertNotification(_ context.Context, n Notification) error {
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *fakeStore) notificationsOfKind(kind NoticeKind) []Notification {
	var out []Notification
	for _, n := range s.notifications {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

type sentMessage struct {
	recipient string
	subject   string
	body      string
}

type fakeNotifier struct {
	fail bool
	sent []sentMessage
}

func (f *fakeNotifier) Send(_ context.Context, recipient, subject, body string) bool {
	f.sent = append(f.sent, sentMessage{recipient, subject, body})
	return !f.fail
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(store Store, notifier Notifier, src Source) *Engine {
	return NewEngine(store, notifier, src, discardLogger())
}

func TestRunTickCreatesBillAndInfo(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	store.devices["a@x.com"] = []Device{{Name: "Refrigerator", PowerWatts: 150}}
	notifier := &fakeNotifier{}
	e := newTestEngine(store, notifier, boundSource{})

	next, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	b := store.bills[billKey("a@x.com", "January", 2025)]
	require.NotNil(t, b)
	assert.Equal(t, 108.0, b.Units)
	assert.Equal(t, 756.0, b.Amount)
	assert.Equal(t, BillUnpaid, b.Status)

	infos := store.notificationsOfKind(KindInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, "Great job! Your consumption this month is just 108.0 units. Keep saving energy!", infos[0].Message)
	assert.Equal(t, "January", infos[0].Month)
	assert.Equal(t, 2025, infos[0].Year)

	// Info delivery plus the new-bill mail.
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "Monthly Electricity Bill", notifier.sent[1].subject)
	assert.Equal(t, "Your bill for January is ₹756.00 for 108.0 kWh.", notifier.sent[1].body)

	assert.Equal(t, NewClock().Advance(), next)
}

func TestRunTickAlertOverThreshold(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	// 2000 W AC pinned to 10 h/day: 20 kWh/day, 600 units/month.
	store.devices["a@x.com"] = []Device{{Name: "Air Conditioner", PowerWatts: 2000}}
	notifier := &fakeNotifier{}
	e := newTestEngine(store, notifier, boundSource{max: true})

	_, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	b := store.bills[billKey("a@x.com", "January", 2025)]
	require.NotNil(t, b)
	assert.Equal(t, 600.0, b.Units)
	assert.Equal(t, 4200.0, b.Amount)

	alerts := store.notificationsOfKind(KindAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, "You have exceeded your threshold limit of 300 units!", alerts[0].Message)
	assert.Empty(t, store.notificationsOfKind(KindWarning))
	assert.Empty(t, store.notificationsOfKind(KindInfo))
}

func TestRunTickCustomThreshold(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	store.devices["a@x.com"] = []Device{{Name: "Refrigerator", PowerWatts: 150}}
	store.thresholds["a@x.com"] = 100
	e := newTestEngine(store, &fakeNotifier{}, boundSource{})

	_, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	// 108 units over a 100-unit limit is an alert, not low-usage praise.
	alerts := store.notificationsOfKind(KindAlert)
	require.Len(t, alerts, 1)
	assert.Equal(t, "You have exceeded your threshold limit of 100 units!", alerts[0].Message)
}

func TestRunTickReplayIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	store.devices["a@x.com"] = []Device{{Name: "Refrigerator", PowerWatts: 150}}
	notifier := &fakeNotifier{}
	e := newTestEngine(store, notifier, boundSource{})

	clk := NewClock()
	_, err := e.RunTick(context.Background(), clk)
	require.NoError(t, err)

	// Bill gets paid between the two runs of the same month.
	store.bills[billKey("a@x.com", "January", 2025)].Status = BillPaid

	_, err = e.RunTick(context.Background(), clk)
	require.NoError(t, err)

	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, store.updates)
	assert.Len(t, store.bills, 1)
	assert.Equal(t, BillPaid, store.bills[billKey("a@x.com", "January", 2025)].Status)

	// The new-bill mail goes out once only.
	var billMails int
	for _, m := range notifier.sent {
		if m.subject == "Monthly Electricity Bill" {
			billMails++
		}
	}
	assert.Equal(t, 1, billMails)
}

func TestRunTickPendingBillReminder(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	store.devices["a@x.com"] = []Device{{Name: "Refrigerator", PowerWatts: 150}}
	store.bills[billKey("a@x.com", "December", 2024)] = &Bill{
		Email: "a@x.com", Month: "December", Year: 2024,
		Units: 108, Amount: 756, Status: BillUnpaid,
	}
	notifier := &fakeNotifier{}
	e := newTestEngine(store, notifier, boundSource{})

	_, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	reminders := store.notificationsOfKind(KindReminder)
	require.Len(t, reminders, 1)
	assert.Equal(t, "You have a pending electricity bill of ₹756.0 from December. Please pay it soon.", reminders[0].Message)
}

func TestRunTickNoReminderForCurrentMonth(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	e := newTestEngine(store, &fakeNotifier{}, boundSource{})

	// First tick leaves January unpaid; replaying January must not nag
	// about the month being billed right now.
	clk := NewClock()
	_, err := e.RunTick(context.Background(), clk)
	require.NoError(t, err)
	_, err = e.RunTick(context.Background(), clk)
	require.NoError(t, err)

	assert.Empty(t, store.notificationsOfKind(KindReminder))
}

func TestRunTickZeroUsageStillPraised(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"empty@x.com"}
	e := newTestEngine(store, &fakeNotifier{}, boundSource{})

	_, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	b := store.bills[billKey("empty@x.com", "January", 2025)]
	require.NotNil(t, b)
	assert.Zero(t, b.Units)
	assert.Zero(t, b.Amount)

	infos := store.notificationsOfKind(KindInfo)
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].Message, "just 0.0 units")
}

func TestRunTickNotifierFailureIsNonFatal(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"a@x.com"}
	store.devices["a@x.com"] = []Device{{Name: "Refrigerator", PowerWatts: 150}}
	e := newTestEngine(store, &fakeNotifier{fail: true}, boundSource{})

	_, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	assert.NotNil(t, store.bills[billKey("a@x.com", "January", 2025)])
	assert.Len(t, store.notificationsOfKind(KindInfo), 1)
}

func TestRunTickFatalWhenHouseholdsUnlistable(t *testing.T) {
	store := newFakeStore()
	store.emailsErr = errors.New("store down")
	e := newTestEngine(store, &fakeNotifier{}, boundSource{})

	clk := NewClock()
	next, err := e.RunTick(context.Background(), clk)

	require.Error(t, err)
	assert.Equal(t, clk, next)
}

func TestRunTickIsolatesHouseholdFailures(t *testing.T) {
	store := newFakeStore()
	store.emails = []string{"broken@x.com", "ok@x.com"}
	store.devicesErr["broken@x.com"] = errors.New("device scan failed")
	store.devices["ok@x.com"] = []Device{{Name: "Refrigerator", PowerWatts: 150}}
	e := newTestEngine(store, &fakeNotifier{}, boundSource{})

	next, err := e.RunTick(context.Background(), NewClock())
	require.NoError(t, err)

	assert.Nil(t, store.bills[billKey("broken@x.com", "January", 2025)])
	assert.NotNil(t, store.bills[billKey("ok@x.com", "January", 2025)])
	assert.Equal(t, NewClock().Advance(), next)
}

func TestRunTickEmptyHouseholdSetAdvancesClock(t *testing.T) {
	store := newFakeStore()
	e := newTestEngine(store, &fakeNotifier{}, boundSource{})

	next, err := e.RunTick(context.Background(), NewClock())

	require.NoError(t, err)
	assert.Equal(t, NewClock().Advance(), next)
	assert.Empty(t, store.notifications)
	assert.Empty(t, store.bills)
}
