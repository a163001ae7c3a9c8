package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/holiman/uint256"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// DefaultMaxInputSize bounds a raw input line when no limit is configured.
const DefaultMaxInputSize = 4096

// MaxOperandDigits is the decimal length of the largest 256-bit operand (2^256 - 1).
const MaxOperandDigits = 78

var (
	// ErrUnreadableInput is returned when input is not a non-negative integer.
	ErrUnreadableInput = errors.New("input is not a non-negative integer")
	// ErrZeroInput is returned by the interactive prompt for a literal zero.
	ErrZeroInput = errors.New("input must be greater than zero")
	// ErrOperandTooLarge is returned for operands wider than 256 bits.
	ErrOperandTooLarge = errors.New("operand does not fit in 256 bits")
	// ErrInputTooLarge is returned for lines longer than the configured limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	// ErrInvalidUTF8 is returned for lines that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// stripControls drops terminal escapes, NUL, BEL and the like. Tabs survive as separators.
var stripControls = runes.Remove(runes.Predicate(func(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}))

// CleanInput checks a raw line against limit bytes and strips control characters.
// A limit of zero or less uses DefaultMaxInputSize.
func CleanInput(line string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	clean, _, err := transform.String(stripControls, line)
	if err != nil {
		return "", err
	}
	return clean, nil
}

// ParseOperand parses a decimal base or height. Zero is accepted; rejecting it is
// a policy of the interactive prompt, not of the evaluator.
// Full-width digits are folded to ASCII.
func ParseOperand(raw string) (*uint256.Int, error) {
	raw = width.Narrow.String(strings.TrimSpace(raw))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnreadableInput)
	}
	// SetFromDecimal tolerates a sign; operands are plain digits only.
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q", ErrUnreadableInput, raw)
		}
	}

	digits := strings.TrimLeft(raw, "0")
	if len(digits) > MaxOperandDigits {
		return nil, fmt.Errorf("%w: %w: %d digits", ErrUnreadableInput, ErrOperandTooLarge, len(digits))
	}

	v := new(uint256.Int)
	if digits == "" {
		return v, nil
	}
	if err := v.SetFromDecimal(digits); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, ErrOperandTooLarge)
	}
	return v, nil
}

// parsePositive is ParseOperand followed by the prompt's zero check.
func parsePositive(raw string) (*uint256.Int, error) {
	v, err := ParseOperand(raw)
	if err != nil {
		return nil, err
	}
	if v.IsZero() {
		return nil, ErrZeroInput
	}
	return v, nil
}

// ParseRequest parses both operands of a request. Zero is accepted.
func ParseRequest(base, height string) (domain.Request, error) {
	b, err := ParseOperand(base)
	if err != nil {
		return domain.Request{}, fmt.Errorf("invalid base: %w", err)
	}
	h, err := ParseOperand(height)
	if err != nil {
		return domain.Request{}, fmt.Errorf("invalid height: %w", err)
	}
	return domain.Request{Base: *b, Height: *h}, nil
}
