package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerificationToken(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		token, err := VerificationToken()
		require.NoError(t, err)
		require.Len(t, token, VerificationTokenLength)

		for _, char := range token {
			require.True(t, strings.ContainsRune(Base62Chars, char),
				"token %q contains character outside the Base62 set", token)
		}

		_, dup := seen[token]
		require.False(t, dup, "token %q generated twice", token)
		seen[token] = struct{}{}
	}
}

func TestConnectionID(t *testing.T) {
	a := ConnectionID()
	b := ConnectionID()

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
