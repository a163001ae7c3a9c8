package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperand(t *testing.T) {
	v, err := ParseOperand(" 340282366920938463463374607431768211455 ")
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", v.Dec())

	v, err = ParseOperand("0")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	for _, bad := range []string{"", "abc", "-1", "+3", "1.5", "1e3", "3 4"} {
		_, err := ParseOperand(bad)
		assert.ErrorIs(t, err, ErrUnreadableInput, "input %q", bad)
	}

	// Larger than 256 bits.
	_, err = ParseOperand("115792089237316195423570985008687907853269984665640564039457584007913129639936")
	assert.ErrorIs(t, err, ErrUnreadableInput)
}

func TestParsePositive(t *testing.T) {
	_, err := parsePositive("0")
	assert.ErrorIs(t, err, ErrZeroInput)

	_, err = parsePositive("x")
	assert.ErrorIs(t, err, ErrUnreadableInput)

	v, err := parsePositive("7")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v.Uint64())
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("3", "0")
	require.NoError(t, err)
	assert.Equal(t, "3:0", req.Key())

	_, err = ParseRequest("x", "1")
	assert.ErrorContains(t, err, "invalid base")
	assert.ErrorIs(t, err, ErrUnreadableInput)

	_, err = ParseRequest("1", "")
	assert.ErrorContains(t, err, "invalid height")
}

func TestParseOperand_Width(t *testing.T) {
	max := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	require.Len(t, max, MaxOperandDigits)

	v, err := ParseOperand(max)
	require.NoError(t, err)
	assert.Equal(t, max, v.Dec())

	// Leading zeros do not count towards the width.
	v, err = ParseOperand(strings.Repeat("0", 100) + "42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v.Uint64())

	v, err = ParseOperand(strings.Repeat("0", 90))
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	tests := []struct {
		name  string
		input string
	}{
		{"One Past Max", "115792089237316195423570985008687907853269984665640564039457584007913129639936"},
		{"Seventy Nine Digits", "1" + strings.Repeat("0", MaxOperandDigits)},
		{"Huge", strings.Repeat("9", 4000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperand(tt.input)
			assert.ErrorIs(t, err, ErrUnreadableInput)
			assert.ErrorIs(t, err, ErrOperandTooLarge)
		})
	}
}

func TestParseOperand_FullWidthDigits(t *testing.T) {
	v, err := ParseOperand("１２３")
	require.NoError(t, err)
	assert.Equal(t, uint64(123), v.Uint64())
}

func TestCleanInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int
		want    string
		wantErr error
	}{
		{"Plain Digits", "7625597484987", 0, "7625597484987", nil},
		{"Tab Kept", "3\t4", 0, "3\t4", nil},
		{"Escape Stripped", "\x1b[31m3\x1b[0m", 0, "[31m3[0m", nil},
		{"Null And Bell Stripped", "1\x002\x07", 0, "12", nil},
		{"Exact Limit", "12345", 5, "12345", nil},
		{"Over Limit", "123456", 5, "", ErrInputTooLarge},
		{"Default Limit", strings.Repeat("1", DefaultMaxInputSize+1), 0, "", ErrInputTooLarge},
		{"Invalid UTF-8", "\xbd\xb2\x3d\xbc", 0, "", ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanInput(tt.input, tt.limit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
