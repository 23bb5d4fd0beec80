package analytics

import (
	"sort"
	"strings"

	"github.com/clarity-clinic/clarity/internal/ledger"
)

// PatientEntry is one row of the derived patient roster.
type PatientEntry struct {
	Name      string `json:"name"`
	PatientID string `json:"patientId"`
	Phone     string `json:"phone"`
	Visits    int    `json:"visits"`
	LastVisit string `json:"lastVisit"`
}

// PatientRoster derives the patient list from transactions. Patients are
// grouped case-insensitively by name; the display name, id and phone keep
// the first-seen values, with blanks rendered as "N/A". The roster is
// ordered by last visit descending.
func PatientRoster(txs []ledger.Transaction) []PatientEntry {
	byKey := make(map[string]*PatientEntry)
	order := make([]string, 0)
	for _, tx := range txs {
		name := strings.TrimSpace(tx.PatientName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		entry, ok := byKey[key]
		if !ok {
			entry = &PatientEntry{
				Name:      name,
				PatientID: orNA(tx.PatientID),
				Phone:     orNA(tx.Phone),
			}
			byKey[key] = entry
			order = append(order, key)
		}
		entry.Visits++
		if tx.Date > entry.LastVisit {
			entry.LastVisit = tx.Date
		}
	}

	roster := make([]PatientEntry, 0, len(order))
	for _, key := range order {
		roster = append(roster, *byKey[key])
	}
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].LastVisit > roster[j].LastVisit
	})
	return roster
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
