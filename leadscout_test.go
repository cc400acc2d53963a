package leadscout_test

import (
	"errors"
	"testing"

	"github.com/osokin/leadscout"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := leadscout.Errorf(leadscout.ENOTFOUND, "prompt %q not found", "company")

	assert.Equal(t, leadscout.ENOTFOUND, leadscout.ErrorCode(err))
	assert.Equal(t, "prompt \"company\" not found", leadscout.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, leadscout.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, leadscout.EINTERNAL, leadscout.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, leadscout.ErrorMessage(nil))
}

func TestCompileTemplate(t *testing.T) {
	t.Parallel()

	t.Run("substitutes named placeholders", func(t *testing.T) {
		t.Parallel()

		got := leadscout.CompileTemplate("Where does {person} work?\n\n{context}", map[string]string{
			"person":  "Иван Петров",
			"context": "some page text",
		})

		assert.Equal(t, "Where does Иван Петров work?\n\nsome page text", got)
	})

	t.Run("leaves unknown placeholders untouched", func(t *testing.T) {
		t.Parallel()

		got := leadscout.CompileTemplate("{person} and {other}", map[string]string{"person": "x"})

		assert.Equal(t, "x and {other}", got)
	})
}
