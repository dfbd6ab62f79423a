package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalID(t *testing.T) {
	t.Parallel()

	const id = "4f6c1c1e-8d7e-4b8e-9a57-1f8c2b0d9e11"

	testCases := []struct {
		name  string
		input string
	}{
		{name: "Canonical", input: id},
		{name: "Uppercase", input: strings.ToUpper(id)},
		{name: "Braced", input: "{" + id + "}"},
		{name: "URN", input: "urn:uuid:" + id},
		{name: "No dashes", input: strings.ReplaceAll(id, "-", "")},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := CanonicalID(tc.input)
			require.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}
}

func TestCanonicalIDInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "42", "not-a-uuid", "urn:uuid:42", "4f6c1c1e-8d7e-4b8e-9a57-1f8c2b0d9e1"} {
		_, err := CanonicalID(input)
		assert.ErrorIs(t, err, ErrInvalidID, input)
	}
}
