package prescriptions

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/shared"
)

type memRepo struct {
	rxs []Prescription
}

func (m *memRepo) Create(_ context.Context, p Prescription) (Prescription, error) {
	p.ID = "generated"
	m.rxs = append(m.rxs, p)
	return p, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i, p := range m.rxs {
		if p.ID == id {
			m.rxs = append(m.rxs[:i], m.rxs[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (m *memRepo) List(context.Context) ([]Prescription, error) { return m.rxs, nil }
func (m *memRepo) Clear(context.Context) error                  { m.rxs = nil; return nil }

type recordingNotifier struct {
	collections []string
}

func (n *recordingNotifier) Changed(_ context.Context, collection string) {
	n.collections = append(n.collections, collection)
}

func validPrescription() Prescription {
	return Prescription{
		Date:     "2024-01-20",
		Doctor:   "Dr. Mehta",
		Patient:  "Aisha Khan",
		Medicine: "Amoxicillin 500mg",
	}
}

func TestServiceCreateAndNotify(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(&memRepo{}, notifier, slog.Default())

	created, err := svc.Create(context.Background(), validPrescription())
	require.NoError(t, err)
	require.Equal(t, "generated", created.ID)
	require.Equal(t, []string{Collection}, notifier.collections)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(&memRepo{}, &recordingNotifier{}, slog.Default())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Prescription)
	}{
		{"bad date", func(p *Prescription) { p.Date = "Jan 20" }},
		{"missing doctor", func(p *Prescription) { p.Doctor = "" }},
		{"missing patient", func(p *Prescription) { p.Patient = " " }},
		{"missing medicine", func(p *Prescription) { p.Medicine = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPrescription()
			tc.mutate(&p)
			_, err := svc.Create(ctx, p)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestServiceDeleteMissing(t *testing.T) {
	svc := NewService(&memRepo{}, &recordingNotifier{}, slog.Default())
	require.ErrorIs(t, svc.Delete(context.Background(), "missing"), shared.ErrNotFound)
}
