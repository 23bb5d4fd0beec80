package appointments

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/shared"
)

type memRepo struct {
	appts []Appointment
}

func (m *memRepo) Create(_ context.Context, a Appointment) (Appointment, error) {
	a.ID = "generated"
	m.appts = append(m.appts, a)
	return a, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.appts {
		if a.ID == id {
			m.appts = append(m.appts[:i], m.appts[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (m *memRepo) List(context.Context) ([]Appointment, error) { return m.appts, nil }
func (m *memRepo) Clear(context.Context) error                 { m.appts = nil; return nil }

type recordingNotifier struct {
	collections []string
}

func (n *recordingNotifier) Changed(_ context.Context, collection string) {
	n.collections = append(n.collections, collection)
}

func validAppointment() Appointment {
	return Appointment{
		Date:    "2024-04-02",
		Time:    "10:30",
		Patient: "Rahul Kumar",
		Doctor:  "Dr. Mehta",
		Status:  StatusConfirmed,
	}
}

func TestServiceCreateDefaultsStatus(t *testing.T) {
	svc := NewService(&memRepo{}, &recordingNotifier{}, slog.Default())

	a := validAppointment()
	a.Status = ""
	created, err := svc.Create(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, created.Status)
}

func TestServiceCreateNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(&memRepo{}, notifier, slog.Default())

	_, err := svc.Create(context.Background(), validAppointment())
	require.NoError(t, err)
	require.Equal(t, []string{Collection}, notifier.collections)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(&memRepo{}, &recordingNotifier{}, slog.Default())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Appointment)
	}{
		{"missing patient", func(a *Appointment) { a.Patient = "" }},
		{"missing doctor", func(a *Appointment) { a.Doctor = " " }},
		{"bad date", func(a *Appointment) { a.Date = "tomorrow" }},
		{"missing time", func(a *Appointment) { a.Time = "" }},
		{"unknown status", func(a *Appointment) { a.Status = "Pencilled" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAppointment()
			tc.mutate(&a)
			_, err := svc.Create(ctx, a)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestServiceDeleteMissing(t *testing.T) {
	svc := NewService(&memRepo{}, &recordingNotifier{}, slog.Default())
	require.ErrorIs(t, svc.Delete(context.Background(), "missing"), shared.ErrNotFound)
}
