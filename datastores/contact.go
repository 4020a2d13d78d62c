package datastores

import "strconv"

// Contact is a named entity with a unique identifier and free-text notes.
//
// Two contacts are equal iff their identifiers are equal, see [Contact.Equal].
// A Contact is not safe for concurrent use: [ContactsStore] implementations
// serialize access to the contacts they own.
type Contact struct {
	id    ContactID
	name  string
	notes string
}

// NewContact returns a contact named name with an identifier taken from ids.
// Any name is accepted, including the empty string.
func NewContact(name string, ids *IDCounter) *Contact {
	return &Contact{id: ids.Next(), name: name}
}

// RestoreContact rebuilds a previously persisted contact. The identifier is
// taken as is, ids counters are left untouched.
func RestoreContact(id ContactID, name, notes string) *Contact {
	return &Contact{id: id, name: name, notes: notes}
}

func (c *Contact) ID() ContactID { return c.id }

func (c *Contact) Name() string { return c.name }

// Notes returns the notes written so far, maybe empty.
func (c *Contact) Notes() string { return c.notes }

// AddNotes appends text to the notes, no delimiter is inserted.
func (c *Contact) AddNotes(text string) { c.notes += text }

// String implements [fmt.Stringer].
func (c *Contact) String() string {
	return "Name: " + c.name +
		"\nID Number: " + strconv.FormatInt(c.id, 10) +
		"\nNotes about " + c.name + ": " + c.notes + "\n"
}

// Equal reports whether other is a [Contact] or a non-nil *[Contact] with the
// same identifier as c. Names and notes are not compared.
func (c *Contact) Equal(other any) bool {
	switch o := other.(type) {
	case *Contact:
		return o != nil && o.id == c.id
	case Contact:
		return o.id == c.id
	default:
		return false
	}
}

func (c *Contact) clone() *Contact { cc := *c; return &cc }
