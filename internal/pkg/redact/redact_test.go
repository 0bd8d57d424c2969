package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"regular", "ivan.petrov@example.com", "iv***@example.com"},
		{"short_local", "ab@example.com", "***@example.com"},
		{"one_char_local", "a@example.com", "***@example.com"},
		{"no_at", "not-an-email", "***"},
		{"two_ats", "a@b@c", "***"},
		{"empty", "", "***"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Email(tc.in))
		})
	}
}

func TestTokenAndPassword_Placeholders(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
