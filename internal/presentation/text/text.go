// Package text renders evaluation outcomes for terminals and logs.
package text

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/aretw0/tetrator/pkg/tetration"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrorOccurred is shown whenever a tower cannot be evaluated.
const ErrorOccurred = "Error occurred during tetration calculation."

var printer = message.NewPrinter(language.English)

// GroupDigits formats n with English thousands separators, e.g. 19729 -> "19,729".
func GroupDigits(n int) string {
	return printer.Sprintf("%d", n)
}

// Plain renders o as the four-line result block, or the error message.
func Plain(o *domain.Outcome) string {
	if !o.OK() {
		return errorLine(o.Err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s =\n", o.Request)
	fmt.Fprintf(&b, "Result: %s\n", o.Decimal())
	fmt.Fprintf(&b, "Number of digits: %s\n", GroupDigits(o.Digits()))
	fmt.Fprintf(&b, "Time taken: %s", elapsed(o))
	return b.String()
}

// Markdown renders o for a markdown renderer.
func Markdown(o *domain.Outcome) string {
	if !o.OK() {
		return "**" + errorLine(o.Err) + "**"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", o.Request)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Number of digits | %s |\n", GroupDigits(o.Digits()))
	fmt.Fprintf(&b, "| Time taken | %s |\n\n", elapsed(o))
	fmt.Fprintf(&b, "```text\n%s\n```\n", o.Decimal())
	return b.String()
}

// Summary is the one-line form used by batch output.
func Summary(o *domain.Outcome) string {
	if !o.OK() {
		return fmt.Sprintf("%s: %s", o.Request, errorLine(o.Err))
	}
	return fmt.Sprintf("%s = %s (%s digits, %s)", o.Request, o.Decimal(), GroupDigits(o.Digits()), elapsed(o))
}

func elapsed(o *domain.Outcome) string {
	if o.Cached {
		return o.Elapsed.String() + " (cached)"
	}
	return o.Elapsed.String()
}

func errorLine(err error) string {
	if err == nil || errors.Is(err, tetration.ErrOverflow) {
		return ErrorOccurred
	}
	return fmt.Sprintf("%s (%v)", ErrorOccurred, err)
}
