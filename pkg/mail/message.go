// Package mail provides the message sink populated by alert composers.
//
// A Message carries recipients, a mime type, a subject and an ordered list of
// typed body fragments. Fragments stay structured until a renderer turns them
// into a document, so composers can be tested fragment by fragment.
package mail

import "slices"

// MimeTypeHTML is the mime type of messages rendered with RenderHTML.
const MimeTypeHTML = "text/html;charset=utf-8"

// Message is the output of a composer. The zero value is an empty message.
type Message struct {
	to       []string
	mimeType string
	subject  string
	body     []Fragment
}

func NewMessage() *Message {
	return &Message{}
}

// AddToAddress adds a single recipient, ignoring blanks and duplicates.
func (m *Message) AddToAddress(address string) {
	if address == "" || slices.Contains(m.to, address) {
		return
	}

	m.to = append(m.to, address)
}

// AddAllToAddress adds every address in order.
func (m *Message) AddAllToAddress(addresses []string) {
	for _, address := range addresses {
		m.AddToAddress(address)
	}
}

func (m *Message) SetMimeType(mimeType string) {
	m.mimeType = mimeType
}

func (m *Message) SetSubject(subject string) {
	m.subject = subject
}

// Append adds fragments to the end of the body.
func (m *Message) Append(fragments ...Fragment) {
	m.body = append(m.body, fragments...)
}

// To returns a copy of the recipient list.
func (m *Message) To() []string {
	return slices.Clone(m.to)
}

func (m *Message) MimeType() string {
	return m.mimeType
}

func (m *Message) Subject() string {
	return m.subject
}

// Body returns a copy of the body fragments in order.
func (m *Message) Body() []Fragment {
	return slices.Clone(m.body)
}

// IsEmpty reports whether nothing has been written to the message.
func (m *Message) IsEmpty() bool {
	return len(m.to) == 0 && m.mimeType == "" && m.subject == "" && len(m.body) == 0
}
