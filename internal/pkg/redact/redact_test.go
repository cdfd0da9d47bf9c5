package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEmail_Table — табличные тесты на маскирование e-mail:
// валидный адрес, короткая локальная часть, невалидный формат,
// граничные случаи с пустыми частями.
func TestEmail_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "local_gt_2", in: "foobar@example.com", want: "fo***@example.com"},
		{name: "local_len_1", in: "a@ex.com", want: "***@ex.com"},
		{name: "local_len_2", in: "ab@ex.com", want: "***@ex.com"},
		{name: "no_at", in: "no-at-here", want: "***"},
		{name: "multiple_at", in: "a@b@c", want: "***"},
		{name: "preserve_domain", in: "abc.def+tag@EXAMPLE.org", want: "ab***@EXAMPLE.org"},
		{name: "empty_string", in: "", want: "***"},
		{name: "empty_domain", in: "user@", want: "us***@"},
		{name: "empty_local", in: "@domain", want: "***@domain"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestPassword_Literal(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
