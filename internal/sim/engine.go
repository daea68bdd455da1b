package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/smart-meter/internal/infra/metrics"
)

type Device struct {
	Name       string
	PowerWatts float64
}

type BillStatus string

const (
	BillUnpaid BillStatus = "Unpaid"
	BillPaid   BillStatus = "Paid"
)

// Bill is keyed by (email, month, year); the store keeps at most one.
type Bill struct {
	Email       string
	Month       string
	Year        int
	Units       float64
	Amount      float64
	Status      BillStatus
	GeneratedAt time.Time
}

type Notification struct {
	Email     string
	Message   string
	Type      NoticeKind
	Timestamp time.Time
	Month     string
	Year      int
}

// Store is the persistence one tick needs. The pgx implementation lives
// in store.go; engine tests use in-memory fakes.
type Store interface {
	ListHouseholds(ctx context.Context) ([]string, error)
	ListDevices(ctx context.Context, email string) ([]Device, error)
	GetThreshold(ctx context.Context, email string) (int, bool, error)
	FindBill(ctx context.Context, email, month string, year int) (*Bill, error)
	InsertBill(ctx context.Context, b Bill) error
	UpdateBillFigures(ctx context.Context, email, month string, year int, units, amount float64, generatedAt time.Time) error
	FindUnpaidBill(ctx context.Context, email, excludeMonth string) (*Bill, error)
	InsertNotification(ctx context.Context, n Notification) error
}

// Notifier delivers a message out of band. Failure is reported as a
// boolean and never aborts processing.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) bool
}

// MultiNotifier fans a message out to several gateways. Delivery counts
// as successful only when every gateway accepts it.
type MultiNotifier []Notifier

func (m MultiNotifier) Send(ctx context.Context, recipient, subject, body string) bool {
	ok := true
	for _, n := range m {
		if !n.Send(ctx, recipient, subject, body) {
			ok = false
		}
	}
	return ok
}

type Engine struct {
	store    Store
	notifier Notifier
	src      Source
	log      *slog.Logger
	now      func() time.Time
}

func NewEngine(store Store, notifier Notifier, src Source, log *slog.Logger) *Engine {
	return &Engine{store: store, notifier: notifier, src: src, log: log, now: time.Now}
}

// RunTick processes every household for the clock's current month and
// returns the advanced clock. When households cannot even be listed the
// tick aborts and the clock comes back unchanged; a single household's
// failure is logged and skipped.
func (e *Engine) RunTick(ctx context.Context, clk Clock) (Clock, error) {
	month, year := clk.Month(), clk.Year()
	e.log.Info("simulated month", "month", month, "year", year)

	emails, err := e.store.ListHouseholds(ctx)
	if err != nil {
		return clk, fmt.Errorf("list households: %w", err)
	}
	for _, email := range emails {
		if err := e.processHousehold(ctx, email, month, year); err != nil {
			e.log.Error("household skipped", "email", email, "err", err)
		}
	}
	metrics.IncTick()
	return clk.Advance(), nil
}

func (e *Engine) processHousehold(ctx context.Context, email, month string, year int) error {
	devices, err := e.store.ListDevices(ctx, email)
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}
	units, amount := MonthlyUsage(devices, e.src)

	threshold, ok, err := e.store.GetThreshold(ctx, email)
	if err != nil {
		return fmt.Errorf("get threshold: %w", err)
	}
	if !ok {
		threshold = DefaultThreshold
	}

	if notice, matched := Classify(units, threshold); matched {
		if err := e.dispatch(ctx, email, month, year, notice); err != nil {
			return err
		}
	}

	if err := e.upsertBill(ctx, email, month, year, units, amount); err != nil {
		return err
	}

	// At most one reminder per tick about an unpaid bill from another
	// simulated month.
	unpaid, err := e.store.FindUnpaidBill(ctx, email, month)
	if err != nil {
		return fmt.Errorf("find unpaid bill: %w", err)
	}
	if unpaid != nil {
		if err := e.dispatch(ctx, email, month, year, ReminderNotice(*unpaid)); err != nil {
			return err
		}
	}
	return nil
}

// dispatch persists the notice, then attempts delivery.
func (e *Engine) dispatch(ctx context.Context, email, month string, year int, n Notice) error {
	rec := Notification{
		Email:     email,
		Message:   n.Message,
		Type:      n.Kind,
		Timestamp: e.now(),
		Month:     month,
		Year:      year,
	}
	if err := e.store.InsertNotification(ctx, rec); err != nil {
		return fmt.Errorf("insert %s notification: %w", n.Kind, err)
	}
	metrics.IncNotification(string(n.Kind))
	e.deliver(ctx, email, n.Subject, n.Message)
	return nil
}

func (e *Engine) deliver(ctx context.Context, recipient, subject, body string) {
	if !e.notifier.Send(ctx, recipient, subject, body) {
		metrics.IncDeliveryFailure()
		e.log.Warn("delivery failed", "recipient", recipient, "subject", subject)
	}
}

// upsertBill creates the month's bill on first sight and refreshes its
// figures on replay. Identity and payment status are never touched by
// the update path, so re-running a month converges to the same bill.
func (e *Engine) upsertBill(ctx context.Context, email, month string, year int, units, amount float64) error {
	existing, err := e.store.FindBill(ctx, email, month, year)
	if err != nil {
		return fmt.Errorf("find bill: %w", err)
	}
	if existing == nil {
		b := Bill{
			Email:       email,
			Month:       month,
			Year:        year,
			Units:       units,
			Amount:      amount,
			Status:      BillUnpaid,
			GeneratedAt: e.now(),
		}
		if err := e.store.InsertBill(ctx, b); err != nil {
			return fmt.Errorf("insert bill: %w", err)
		}
		metrics.IncBillUpsert()
		e.deliver(ctx, email, "Monthly Electricity Bill",
			fmt.Sprintf("Your bill for %s is ₹%.2f for %s kWh.", month, amount, formatUnits(units)))
		return nil
	}
	if err := e.store.UpdateBillFigures(ctx, email, month, year, units, amount, e.now()); err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	metrics.IncBillUpsert()
	return nil
}
