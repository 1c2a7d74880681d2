package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ZeroValueIsEmpty(t *testing.T) {
	msg := NewMessage()

	assert.True(t, msg.IsEmpty())
	assert.Empty(t, msg.To())
	assert.Empty(t, msg.Body())
}

func TestMessage_AddAllToAddress(t *testing.T) {
	msg := NewMessage()
	msg.AddAllToAddress([]string{"a@x.org", "", "b@x.org", "a@x.org"})

	assert.Equal(t, []string{"a@x.org", "b@x.org"}, msg.To())
	assert.False(t, msg.IsEmpty())
}

func TestMessage_AccessorsReturnCopies(t *testing.T) {
	msg := NewMessage()
	msg.AddToAddress("a@x.org")
	msg.Append(Paragraph{Text: "hello"})

	to := msg.To()
	to[0] = "mutated@x.org"

	body := msg.Body()
	body[0] = Paragraph{Text: "mutated"}

	assert.Equal(t, []string{"a@x.org"}, msg.To())
	assert.Equal(t, Paragraph{Text: "hello"}, msg.Body()[0])
}

func TestRenderHTML(t *testing.T) {
	msg := NewMessage()
	msg.Append(
		Heading{Text: "Flow <etl> failed", Alert: true},
		Paragraph{Text: "policy"},
		Table{Rows: []Row{{Label: "Start Time", Value: "2024/03/01 12:30:00 UTC"}}},
		Heading{Level: 3, Text: "Details"},
		Preformatted{Text: "boom\n\tat main.go:10"},
		List{Items: []string{"one", "two & three"}},
		Link{Text: "Execution", URL: "https://flows.example.com/executor?execid=1"},
	)

	out := RenderHTML(msg)

	assert.Contains(t, out, `<h2 style="color:#FF0000">Flow &lt;etl&gt; failed</h2>`)
	assert.Contains(t, out, "<p>policy</p>")
	assert.Contains(t, out, `class="flow-alert-table"`)
	assert.Contains(t, out, "Start Time")
	assert.Contains(t, out, "2024/03/01 12:30:00 UTC")
	assert.Contains(t, out, "<h3>Details</h3>")
	assert.Contains(t, out, "<pre>boom\n\tat main.go:10</pre>")
	assert.Contains(t, out, "<ul>\n<li>one</li>\n<li>two &amp; three</li>\n</ul>")
	assert.Contains(t, out, `<a href="https://flows.example.com/executor?execid=1">Execution</a>`)

	assert.Less(t, strings.Index(out, "<h2"), strings.Index(out, "<p>policy"))
	assert.Less(t, strings.Index(out, "<p>policy"), strings.Index(out, "Start Time"))
}

func TestRenderHTML_PlainHeading(t *testing.T) {
	msg := NewMessage()
	msg.Append(Heading{Text: "Flow succeeded"})

	assert.Equal(t, "<h2>Flow succeeded</h2>\n", RenderHTML(msg))
}

func TestRenderText(t *testing.T) {
	msg := NewMessage()
	msg.Append(
		Heading{Text: "Title"},
		Table{Rows: []Row{{Label: "Status", Value: "FAILED"}}},
		List{Items: []string{"a", "b"}},
	)

	out := RenderText(msg)

	require.True(t, strings.HasPrefix(out, "Title\n=====\n"))
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "  - a\n  - b")
}

func TestRender_FollowsMimeType(t *testing.T) {
	msg := NewMessage()
	msg.Append(Heading{Level: 2, Text: "Done"})

	assert.Equal(t, RenderText(msg), Render(msg))

	msg.SetMimeType(MimeTypeHTML)
	assert.Equal(t, RenderHTML(msg), Render(msg))
}
