// Package copier provides generic deep copy helpers over github.com/jinzhu/copier
package copier

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// deepOpts represents options of every copy made by this package
var deepOpts = copier.Option{DeepCopy: true, IgnoreEmpty: true}

// Deep returns deep copy of <src> or error if copier fails
func Deep[T any](src T) (T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, &src, deepOpts); err != nil {
		return dst, errors.Wrapf(err, "Deep copy %T", src)
	}
	return dst, nil
}

// PDeep returns deep copy of <src>, panicking if copier fails
func PDeep[T any](src T) T {
	return lo.Must(Deep(src))
}

// TDeep returns deep copy of <src>, failing the test <t> if copier fails
func TDeep[T any](t *testing.T, src T) T {
	t.Helper()
	dst, err := Deep(src)
	assert.NoError(t, err, "should copy %T", src)
	return dst
}
