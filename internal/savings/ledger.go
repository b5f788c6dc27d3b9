package savings

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/flexo-savings/pkg/mathutil"
)

// Ledger holds the annual savings of every category. The zero value is an empty
// ledger with all six entries at zero. A ledger is owned by one session; an entry
// only changes when its calculator completes.
type Ledger struct {
	amounts [categoryCount]float64
}

// Entry is one category's savings.
type Entry struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Amount   float64  `json:"amount"`
}

// Share is one category's part of the total, in percent.
type Share struct {
	Category Category `json:"category"`
	Percent  float64  `json:"percent"`
}

// NewLedger returns a ledger with all entries at zero.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Get returns the savings recorded for c.
func (l *Ledger) Get(c Category) float64 {
	if !c.Valid() {
		return 0
	}
	return l.amounts[c]
}

// Apply runs the calculator for in and records its savings. On incomplete input
// it returns an *IncompleteInputError and the ledger keeps its prior value.
func (l *Ledger) Apply(in Input) (Result, error) {
	result, err := Calculate(in)
	if err != nil {
		return nil, err
	}
	l.record(result)
	return result, nil
}

func (l *Ledger) record(r Result) {
	l.amounts[r.Category()] = r.AnnualSavings()
}

// Total returns the sum of all six entries.
func (l *Ledger) Total() float64 {
	return Total(l)
}

// Total sums the ledger. It is always computed from the current entries.
func Total(l *Ledger) float64 {
	if l == nil {
		return 0
	}
	total := 0.0
	for _, amount := range l.amounts {
		total += amount
	}
	return total
}

// Entries returns the six entries in canonical order.
func (l *Ledger) Entries() []Entry {
	entries := make([]Entry, 0, categoryCount)
	for _, c := range Categories() {
		entries = append(entries, Entry{Category: c, Label: c.Label(), Amount: l.amounts[c]})
	}
	return entries
}

// Shares returns each category's percentage of the total. All shares are zero
// when the total is within a cent of zero.
func (l *Ledger) Shares() []Share {
	total := l.Total()
	shares := make([]Share, 0, categoryCount)
	for _, c := range Categories() {
		share := Share{Category: c}
		if !mathutil.IsZero(total) {
			share.Percent = mathutil.CalculatePercentage(l.amounts[c], total)
		}
		shares = append(shares, share)
	}
	return shares
}

// Clone returns an independent copy.
func (l *Ledger) Clone() *Ledger {
	c := *l
	return &c
}

// Map returns the ledger keyed by category key.
func (l *Ledger) Map() map[string]float64 {
	m := make(map[string]float64, categoryCount)
	for _, c := range Categories() {
		m[c.String()] = l.amounts[c]
	}
	return m
}

// FromMap builds a ledger from category keys. Absent keys stay zero; unknown
// keys are rejected.
func FromMap(m map[string]float64) (*Ledger, error) {
	l := NewLedger()
	for key, amount := range m {
		c, err := ParseCategory(key)
		if err != nil {
			return nil, err
		}
		l.amounts[c] = amount
	}
	return l, nil
}

// MarshalJSON encodes the ledger as an object with exactly the six category keys.
func (l Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Map())
}

// UnmarshalJSON decodes an object of category keys.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}
	decoded, err := FromMap(m)
	if err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}
	*l = *decoded
	return nil
}

// MarshalYAML encodes the ledger as a mapping of category keys.
func (l Ledger) MarshalYAML() (interface{}, error) {
	return l.Map(), nil
}
