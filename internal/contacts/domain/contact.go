// Package domain holds the contact model shared by the vCard parser, the
// phonebook mapper and the export service.
package domain

// Contact is a normalized address-book entry. It is immutable once built;
// use Builder to construct one.
type Contact struct {
	firstName   string
	lastName    string
	displayName string
	email       string
	phoneWork   string
	phoneMobile string
	phoneHome   string
	company     string
	title       string
	department  string
	notes       string
}

func (c Contact) FirstName() string   { return c.firstName }
func (c Contact) LastName() string    { return c.lastName }
func (c Contact) DisplayName() string { return c.displayName }
func (c Contact) Email() string       { return c.email }
func (c Contact) PhoneWork() string   { return c.phoneWork }
func (c Contact) PhoneMobile() string { return c.phoneMobile }
func (c Contact) PhoneHome() string   { return c.phoneHome }
func (c Contact) Company() string     { return c.company }
func (c Contact) Title() string       { return c.title }
func (c Contact) Department() string  { return c.department }
func (c Contact) Notes() string       { return c.notes }

// Valid reports whether the contact carries at least one name field.
// Contacts without a name are dropped before export.
func (c Contact) Valid() bool {
	return c.displayName != "" || c.firstName != "" || c.lastName != ""
}

// MainPhone returns the number used as the primary phonebook entry:
// work, then mobile, then home.
func (c Contact) MainPhone() string {
	switch {
	case c.phoneWork != "":
		return c.phoneWork
	case c.phoneMobile != "":
		return c.phoneMobile
	default:
		return c.phoneHome
	}
}

// Builder accumulates contact fields. Each setter applies the conflict
// rule of its field when the same property appears more than once:
// Set* overwrites, Add* keeps the first non-empty value.
type Builder struct {
	c Contact
}

func (b *Builder) SetDisplayName(v string) *Builder { b.c.displayName = v; return b }
func (b *Builder) SetCompany(v string) *Builder     { b.c.company = v; return b }
func (b *Builder) SetTitle(v string) *Builder       { b.c.title = v; return b }
func (b *Builder) SetDepartment(v string) *Builder  { b.c.department = v; return b }
func (b *Builder) SetNotes(v string) *Builder       { b.c.notes = v; return b }

// SetName overwrites both name parts together.
func (b *Builder) SetName(last, first string) *Builder {
	b.c.lastName = last
	b.c.firstName = first
	return b
}

// AddEmail records v only if no email has been recorded yet.
func (b *Builder) AddEmail(v string) *Builder {
	if b.c.email == "" {
		b.c.email = v
	}
	return b
}

// AddPhone stores number in the slot for kind if that slot is empty.
// When the slot is already taken the number falls back to the work slot,
// again only if that one is still empty. It reports whether the number
// was stored.
func (b *Builder) AddPhone(kind PhoneKind, number string) bool {
	if slot := b.slot(kind); slot != nil && *slot == "" {
		*slot = number
		return true
	}
	if b.c.phoneWork == "" {
		b.c.phoneWork = number
		return true
	}
	return false
}

func (b *Builder) slot(kind PhoneKind) *string {
	switch kind {
	case PhoneWork:
		return &b.c.phoneWork
	case PhoneMobile:
		return &b.c.phoneMobile
	case PhoneHome:
		return &b.c.phoneHome
	}
	return nil
}

// Build returns the accumulated contact. The builder may keep being used;
// later changes do not affect contacts already built.
func (b *Builder) Build() Contact {
	return b.c
}
