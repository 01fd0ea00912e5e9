package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotification(t *testing.T) {
	n := NewNotification()
	assert.False(t, n.HasErrors())
	_, ok := n.FirstError()
	assert.False(t, ok)

	n.AppendMessage("first").Append(Error{Message: "second"})

	other := NewNotification().AppendMessage("third")
	n.AppendAll(other).AppendAll(nil)

	assert.True(t, n.HasErrors())
	assert.Equal(t, []string{"first", "second", "third"}, n.Messages())
	first, ok := n.FirstError()
	assert.True(t, ok)
	assert.Equal(t, "first", first.Error())

	errs := n.Errors()
	errs[0].Message = "changed"
	assert.Equal(t, "first", n.Messages()[0])
}
