package yamlfile

import (
	"testing"

	"flight_cfg/comments"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	c := New(DefaultOptions())

	port := c.Path("server").Child("port").Set(8080).CommentSide("Listen port")
	c.Path("server.host").SetDefault("localhost").Comment("Bind address")
	c.Path("server.host").SetDefault("example.com")
	c.Path("debug").Set(false).BlankLine()

	assert.Exactly(t, "server.port", port.String(), "should join path")
	assert.Exactly(t, "server", port.Parent().String(), "should return parent path")
	assert.Nil(t, port.Parent().Parent(), "should return nil parent for top level key")

	host, ok := c.Path("server.host").Get()
	assert.True(t, ok)
	assert.Exactly(t, "localhost", host, "should not overwrite existing value with default")

	expected := "server:\n  port: 8080 # Listen port\n  # Bind address\n  host: localhost\n\ndebug: false\n"
	assert.Exactly(t, expected, saveString(t, c), "should write values and comments set through path")

	c.Path("debug").CommentWithFormat("Debug mode", comments.Block, comments.BlankLine)
	comment, _ := c.GetComment("debug", comments.Block)
	assert.Exactly(t, "Debug mode", comment, "should read comment set with another format")
}
