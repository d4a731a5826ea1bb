package model

import "encoding/json"

// AppData is the aggregate root that is persisted, exported and imported.
// Transactions are ordered newest-first by insertion, not by date.
type AppData struct {
	Transactions []Transaction `json:"transactions"`
	Budgets      Budgets       `json:"budgets"`
}

type appDataWire struct {
	Transactions []Transaction `json:"transactions"`
	Budgets      Budgets       `json:"budgets"`
}

// Clone returns a deep copy. Empty collections are returned in their zero form.
func (d AppData) Clone() AppData {
	var out AppData
	if len(d.Transactions) > 0 {
		out.Transactions = make([]Transaction, len(d.Transactions))
		copy(out.Transactions, d.Transactions)
	}
	out.Budgets = d.Budgets.Clone()
	return out
}

// IsEmpty reports whether there are neither transactions nor budgets.
func (d AppData) IsEmpty() bool {
	return len(d.Transactions) == 0 && d.Budgets.Len() == 0
}

// HasTransaction reports whether a transaction with id exists.
func (d AppData) HasTransaction(id string) bool {
	for _, t := range d.Transactions {
		if t.ID == id {
			return true
		}
	}
	return false
}

// MarshalJSON always emits both fields, with an empty array rather than null.
func (d AppData) MarshalJSON() ([]byte, error) {
	w := appDataWire{Transactions: d.Transactions, Budgets: d.Budgets}
	if w.Transactions == nil {
		w.Transactions = []Transaction{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes leniently: missing fields default to empty.
func (d *AppData) UnmarshalJSON(data []byte) error {
	var w appDataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = AppData{Transactions: w.Transactions, Budgets: w.Budgets}.Clone()
	return nil
}
