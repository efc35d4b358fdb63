package phonebook

import (
	"strconv"

	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
)

// TenantID is the 3CX tenant every imported contact belongs to.
const TenantID = 1

// Maximum field lengths accepted by the 3CX phonebook table.
const (
	maxName       = 50
	maxPhone      = 20
	maxCompany    = 100
	maxEmail      = 100
	maxTitle      = 50
	maxDepartment = 50
	maxNotes      = 200
)

// Map converts a contact into a phonebook row. id is written verbatim as
// idphonebook; callers number valid contacts from 1 in processing order.
func Map(c domain.Contact, id int) Row {
	return Row{
		{ColID, strconv.Itoa(id)},
		{ColFirstName, truncate(c.FirstName(), maxName)},
		{ColLastName, truncate(c.LastName(), maxName)},
		{ColPhone, truncate(c.MainPhone(), maxPhone)},
		{ColTenant, strconv.Itoa(TenantID)},
		{ColDN, ""},
		{ColCompany, truncate(c.Company(), maxCompany)},
		{ColTag, ""},
		{ColEmail, truncate(c.Email(), maxEmail)},
		{ColMobile, truncate(c.PhoneMobile(), maxPhone)},
		{ColHome, truncate(c.PhoneHome(), maxPhone)},
		{ColWork, truncate(c.PhoneWork(), maxPhone)},
		{ColFax, ""},
		{ColTitle, truncate(c.Title(), maxTitle)},
		{ColDepartment, truncate(c.Department(), maxDepartment)},
		{ColNotes, truncate(c.Notes(), maxNotes)},
		{ColExtra8, ""},
		{ColExtra9, ""},
	}
}

// MapAll numbers contacts from 1 in slice order and maps each one.
func MapAll(contacts []domain.Contact) []Row {
	rows := make([]Row, len(contacts))
	for i, c := range contacts {
		rows[i] = Map(c, i+1)
	}
	return rows
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
