package models

import (
	"time"

	"gorm.io/gorm"
)

// Service kind labels as they appear in the spreadsheet
const (
	ServiceKindQuote   = "Cotización"
	ServiceKindRequest = "Solicitud"
)

// Lead is one completed intake dialogue, ready to be appended to the
// spreadsheet (and optionally archived in the database).
type Lead struct {
	gorm.Model
	Timestamp      time.Time `json:"timestamp"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	SelectedOption string    `json:"selected_option"`
	ServiceKind    string    `json:"service_kind"`
}

const rowTimeLayout = "2006-01-02 15:04:05"

// Row renders the lead as the ordered spreadsheet row:
// timestamp, name, phone, email, selected option, service kind.
// Option and kind fall back to "N/A" if they were somehow never set.
func (l *Lead) Row() []interface{} {
	return []interface{}{
		l.Timestamp.Format(rowTimeLayout),
		l.Name,
		l.Phone,
		l.Email,
		orNA(l.SelectedOption),
		orNA(l.ServiceKind),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
