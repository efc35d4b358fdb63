package domain

// PhoneKind is the phonebook slot a TEL property is filed under.
type PhoneKind string

const (
	PhoneWork   PhoneKind = "work"
	PhoneMobile PhoneKind = "mobile"
	PhoneHome   PhoneKind = "home"
)
