package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatch(t *testing.T) {
	name := "Bob"
	email := "bob@x.com"

	assert.True(t, Patch{}.IsEmpty())
	assert.Empty(t, Patch{}.Columns())

	p := Patch{Name: &name}
	assert.False(t, p.IsEmpty())
	assert.Equal(t, map[string]any{"name": "Bob"}, p.Columns())

	p = Patch{Name: &name, Email: &email}
	assert.Equal(t, map[string]any{"name": "Bob", "email": "bob@x.com"}, p.Columns())
}
