package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectGenerator_NewSubjectID(t *testing.T) {
	gen := NewSubjectGenerator()
	seen := make(map[string]struct{})

	for range 100 {
		id, err := gen.NewSubjectID()
		require.NoError(t, err)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.Equal(t, parsed.String(), id, "ids use the canonical hyphenated form")

		_, dup := seen[id]
		assert.False(t, dup, "duplicate subject id %s", id)
		seen[id] = struct{}{}
	}
}
