package sim

import (
	"context"
	"time"

	"github.com/Spok95/smart-meter/internal/domain/billing"
	"github.com/Spok95/smart-meter/internal/domain/devices"
	"github.com/Spok95/smart-meter/internal/domain/households"
	"github.com/Spok95/smart-meter/internal/domain/notifications"
	"github.com/Spok95/smart-meter/internal/domain/thresholds"
)

// PgStore adapts the domain repos to the engine's Store interface.
type PgStore struct {
	households    *households.Repo
	devices       *devices.Repo
	thresholds    *thresholds.Repo
	bills         *billing.Repo
	notifications *notifications.Repo
}

func NewPgStore(
	householdsRepo *households.Repo,
	devicesRepo *devices.Repo,
	thresholdsRepo *thresholds.Repo,
	billsRepo *billing.Repo,
	notificationsRepo *notifications.Repo,
) *PgStore {
	return &PgStore{
		households:    householdsRepo,
		devices:       devicesRepo,
		thresholds:    thresholdsRepo,
		bills:         billsRepo,
		notifications: notificationsRepo,
	}
}

func (s *PgStore) ListHouseholds(ctx context.Context) ([]string, error) {
	return s.households.ListEmails(ctx)
}

func (s *PgStore) ListDevices(ctx context.Context, email string) ([]Device, error) {
	ds, err := s.devices.ListByHousehold(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]Device, 0, len(ds))
	for _, d := range ds {
		out = append(out, Device{Name: d.Name, PowerWatts: d.PowerUsage})
	}
	return out, nil
}

func (s *PgStore) GetThreshold(ctx context.Context, email string) (int, bool, error) {
	return s.thresholds.Get(ctx, email)
}

func (s *PgStore) FindBill(ctx context.Context, email, month string, year int) (*Bill, error) {
	b, err := s.bills.Find(ctx, email, month, year)
	if err != nil || b == nil {
		return nil, err
	}
	return fromBillingBill(b), nil
}

func (s *PgStore) InsertBill(ctx context.Context, b Bill) error {
	_, err := s.bills.Insert(ctx, billing.Bill{
		Email:       b.Email,
		Month:       b.Month,
		Year:        b.Year,
		Units:       b.Units,
		Amount:      b.Amount,
		Status:      string(b.Status),
		GeneratedAt: b.GeneratedAt,
	})
	return err
}

func (s *PgStore) UpdateBillFigures(ctx context.Context, email, month string, year int, units, amount float64, generatedAt time.Time) error {
	return s.bills.UpdateFigures(ctx, email, month, year, units, amount, generatedAt)
}

func (s *PgStore) FindUnpaidBill(ctx context.Context, email, excludeMonth string) (*Bill, error) {
	b, err := s.bills.FindUnpaidExcluding(ctx, email, excludeMonth)
	if err != nil || b == nil {
		return nil, err
	}
	return fromBillingBill(b), nil
}

func (s *PgStore) InsertNotification(ctx context.Context, n Notification) error {
	return s.notifications.Insert(ctx, notifications.Notification{
		Email:     n.Email,
		Message:   n.Message,
		Type:      string(n.Type),
		Timestamp: n.Timestamp,
		Month:     n.Month,
		Year:      n.Year,
	})
}

func fromBillingBill(b *billing.Bill) *Bill {
	return &Bill{
		Email:       b.Email,
		Month:       b.Month,
		Year:        b.Year,
		Units:       b.Units,
		Amount:      b.Amount,
		Status:      BillStatus(b.Status),
		GeneratedAt: b.GeneratedAt,
	}
}
