// Package phonebook maps contacts onto the 3CX phonebook import schema and
// writes them as CSV.
package phonebook

// Column names of the 3CX phonebook table, in emission order.
const (
	ColID         = "idphonebook"
	ColFirstName  = "firstname"
	ColLastName   = "lastname"
	ColPhone      = "phonenumber"
	ColTenant     = "fkidtenant"
	ColDN         = "fkiddn"
	ColCompany    = "company"
	ColTag        = "tag"
	ColEmail      = "pv_an5"
	ColMobile     = "pv_an0"
	ColHome       = "pv_an1"
	ColWork       = "pv_an2"
	ColFax        = "pv_an3"
	ColTitle      = "pv_an4"
	ColDepartment = "pv_an6"
	ColNotes      = "pv_an7"
	ColExtra8     = "pv_an8"
	ColExtra9     = "pv_an9"
)

// Columns is the fixed column order of every Row.
var Columns = []string{
	ColID, ColFirstName, ColLastName, ColPhone, ColTenant, ColDN,
	ColCompany, ColTag, ColEmail, ColMobile, ColHome, ColWork,
	ColFax, ColTitle, ColDepartment, ColNotes, ColExtra8, ColExtra9,
}

// Field is a single named value of a Row.
type Field struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Row is one phonebook record. Its fields follow Columns exactly.
type Row []Field

// Get returns the value stored under column, or "" if the row has no such
// column.
func (r Row) Get(column string) string {
	for _, f := range r {
		if f.Column == column {
			return f.Value
		}
	}
	return ""
}

// Values returns the row's values in column order.
func (r Row) Values() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Value
	}
	return out
}
