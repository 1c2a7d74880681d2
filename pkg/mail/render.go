package mail

import (
	"html"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	alertColor     = "#FF0000"
	defaultHeading = 2
	tableCSSClass  = "flow-alert-table"
)

// Render serialises m with the renderer matching its mime type: HTML for
// text/html messages, plain text otherwise.
func Render(m *Message) string {
	if strings.HasPrefix(strings.ToLower(m.mimeType), "text/html") {
		return RenderHTML(m)
	}

	return RenderText(m)
}

// RenderHTML serialises the body of m into one HTML document fragment.
// Text is escaped; fragments appear in body order, one per line.
func RenderHTML(m *Message) string {
	var b strings.Builder

	for _, fragment := range m.body {
		writeHTML(&b, fragment)
		b.WriteByte('\n')
	}

	return b.String()
}

// RenderText serialises the body of m as plain text for terminals.
func RenderText(m *Message) string {
	var b strings.Builder

	for _, fragment := range m.body {
		writeText(&b, fragment)
		b.WriteByte('\n')
	}

	return b.String()
}

func writeHTML(b *strings.Builder, fragment Fragment) {
	switch f := fragment.(type) {
	case Heading:
		tag := "h" + strconv.Itoa(headingLevel(f.Level))

		b.WriteString("<" + tag)

		if f.Alert {
			b.WriteString(` style="color:` + alertColor + `"`)
		}

		b.WriteString(">" + html.EscapeString(f.Text) + "</" + tag + ">")
	case Paragraph:
		b.WriteString("<p>" + html.EscapeString(f.Text) + "</p>")
	case Table:
		b.WriteString(newTableWriter(f).RenderHTML())
	case Preformatted:
		b.WriteString("<pre>" + html.EscapeString(f.Text) + "</pre>")
	case List:
		b.WriteString("<ul>\n")

		for _, item := range f.Items {
			b.WriteString("<li>" + html.EscapeString(item) + "</li>\n")
		}

		b.WriteString("</ul>")
	case Link:
		b.WriteString(`<a href="` + html.EscapeString(f.URL) + `">` + html.EscapeString(f.Text) + "</a>")
	}
}

func writeText(b *strings.Builder, fragment Fragment) {
	switch f := fragment.(type) {
	case Heading:
		b.WriteString(f.Text + "\n")
		b.WriteString(strings.Repeat(underline(f.Level), text.StringWidthWithoutEscSequences(f.Text)))
	case Paragraph:
		b.WriteString(f.Text)
	case Table:
		tw := newTableWriter(f)
		tw.SetStyle(table.StyleLight)
		b.WriteString(tw.Render())
	case Preformatted:
		b.WriteString(f.Text)
	case List:
		for i, item := range f.Items {
			if i > 0 {
				b.WriteByte('\n')
			}

			b.WriteString("  - " + item)
		}
	case Link:
		b.WriteString(f.Text + ": " + f.URL)
	}
}

func newTableWriter(t Table) table.Writer {
	tw := table.NewWriter()
	tw.Style().HTML.CSSClass = tableCSSClass

	for _, row := range t.Rows {
		tw.AppendRow(table.Row{row.Label, row.Value})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})

	return tw
}

func headingLevel(level int) int {
	if level < 1 || level > 6 {
		return defaultHeading
	}

	return level
}

func underline(level int) string {
	if headingLevel(level) <= defaultHeading {
		return "="
	}

	return "-"
}
