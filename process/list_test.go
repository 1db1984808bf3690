package process

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestComments(t *testing.T) {
	r := newTestRepo(t, io.Discard)
	r.set.Format.Header = "Network"

	rows, err := r.Comments(filepath.Join("testdata", "listed.yml"))
	assert.NoError(t, err, "should not return error")
	expected := []CommentRow{
		{Type: "header", Comment: "Network"},
		{Path: "server.host", Type: "side", Comment: "Bind address"},
		{Path: "server.ports[0]", Type: "block", Comment: "Public port"},
		{Path: "server.ports[1]", Type: "side", Comment: "TLS"},
		{Type: "footer", Comment: "End of file"},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("unexpected comments (-want +got):\n%v", diff)
	}

	_, err = r.Comments(filepath.Join("testdata", "missing.yml"))
	assert.Error(t, err, "should return error for missing file")
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	r := newTestRepo(t, &out)

	assert.NoError(t, r.List(filepath.Join("testdata", "app.yml")), "should not return error")
	assert.Contains(t, out.String(), filepath.Join("testdata", "app.yml"), "should print title")
	assert.Contains(t, out.String(), "│ server      │ block │ Server settings │")
	assert.Contains(t, out.String(), "│ server.host │ side  │ Bind address    │")
	assert.Contains(t, out.String(), "TOTAL", "should print footer")
}
