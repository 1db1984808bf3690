package yamlfile

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]byte(readFile(t, "testdata/config.yaml")), false), "should accept valid config")
	assert.NoError(t, Validate(nil, false), "should accept empty config")

	err := Validate([]byte("a: [1, 2\n"), false)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "should reject broken YAML")

	err = Validate([]byte("a: 1\n---\nb: 2\n"), false)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "should reject several documents")
	assert.Contains(t, err.Error(), "2 documents", "should report amount of documents")
}
