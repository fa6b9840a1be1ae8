package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "bare ten digits", input: "9876543210", want: "+919876543210", ok: true},
		{name: "prefixed", input: "+919876543210", want: "+919876543210", ok: true},
		{name: "spaces stripped", input: " +91 98765 43210 ", want: "+919876543210", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "too short", input: "987654321", ok: false},
		{name: "too long", input: "98765432100", ok: false},
		{name: "prefixed too short", input: "+91987654321", ok: false},
		{name: "letters", input: "98765aaa10", ok: false},
		{name: "other country code", input: "+19876543210", ok: false},
		{name: "plus only", input: "+", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizePhone(tt.input)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidatePassword("short"))
	require.NoError(t, ValidatePassword("secret1"))
	require.Error(t, ValidatePassword(string(make([]byte, 73))))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
}
