package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	ID               uint64
	Title            string
	DisplayThumbnail string
	Views            uint64
	CreatedAt        time.Time
	Owner            struct{ Username string }
}

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"list.html", "channel.html", "detail.html", "upload.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	c := card{ID: 3, Title: "<clip>", DisplayThumbnail: "https://ik.imagekit.io/demo/a.mp4?tr=epage-0"}
	c.Owner.Username = "alice"
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "list.html", map[string]any{"Videos": []card{c}}))
	out := buf.String()
	assert.Contains(t, out, `href="/videos/3/"`)
	assert.Contains(t, out, "&lt;clip&gt;")
	assert.Contains(t, out, `href="/channel/alice/"`)

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "list.html", map[string]any{"Videos": []card{}}))
	assert.Contains(t, buf.String(), "No videos yet.")
}

func TestVoteFunc(t *testing.T) {
	vote := funcs["vote"].(func(*int8) int)
	liked := int8(1)
	assert.Equal(t, 0, vote(nil))
	assert.Equal(t, 1, vote(&liked))
}
