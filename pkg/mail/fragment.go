package mail

// FragmentKind identifies a body fragment type.
type FragmentKind string

const (
	KindHeading      FragmentKind = "heading"
	KindParagraph    FragmentKind = "paragraph"
	KindTable        FragmentKind = "table"
	KindPreformatted FragmentKind = "preformatted"
	KindList         FragmentKind = "list"
	KindLink         FragmentKind = "link"
)

// Fragment is one piece of a message body.
type Fragment interface {
	Kind() FragmentKind
}

// Heading is a section title. Alert headings are rendered in the alarm colour.
type Heading struct {
	Level int
	Text  string
	Alert bool
}

func (Heading) Kind() FragmentKind { return KindHeading }

type Paragraph struct {
	Text string
}

func (Paragraph) Kind() FragmentKind { return KindParagraph }

// Row is a label/value pair of a Table.
type Row struct {
	Label string
	Value string
}

type Table struct {
	Rows []Row
}

func (Table) Kind() FragmentKind { return KindTable }

// Preformatted is rendered verbatim, whitespace included.
type Preformatted struct {
	Text string
}

func (Preformatted) Kind() FragmentKind { return KindPreformatted }

// List is an unordered bullet list.
type List struct {
	Items []string
}

func (List) Kind() FragmentKind { return KindList }

type Link struct {
	Text string
	URL  string
}

func (Link) Kind() FragmentKind { return KindLink }
