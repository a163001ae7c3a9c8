package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ContentRenderer turns markdown into terminal output.
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard line-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	maxInput  int
	inputChan chan inputResult
	startOnce sync.Once
	done      chan struct{}
	closeOnce sync.Once
	// pumpDone is closed when the reader goroutine exits.
	pumpDone chan struct{}
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithMaxInputSize overrides the line size limit.
func WithMaxInputSize(limit int) TextHandlerOption {
	return func(h *TextHandler) {
		if limit > 0 {
			h.maxInput = limit
		}
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:   bufio.NewReader(r),
		Writer:   w,
		maxInput: DefaultMaxInputSize,
		done:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Prompt can honour context cancellation.
// It stops once Close is called, even if nobody is waiting for the next line.
func (h *TextHandler) pump() {
	defer close(h.pumpDone)
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" && !h.send(inputResult{text: text}) {
			return
		}

		if err != nil {
			if err != io.EOF {
				h.send(inputResult{err: err})
			}
			return
		}
	}
}

func (h *TextHandler) send(res inputResult) bool {
	select {
	case h.inputChan <- res:
		return true
	case <-h.done:
		return false
	}
}

// Close releases the reader goroutine. A read already blocked on the
// underlying reader finishes on its own; its line is discarded.
func (h *TextHandler) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Output writes msg, rendering it first when a renderer is configured.
func (h *TextHandler) Output(msg string) {
	output := msg
	if h.Renderer != nil {
		if rendered, err := h.Renderer(msg); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(h.Writer, strings.TrimRight(output, "\n"))
}

// Println writes msg verbatim.
func (h *TextHandler) Println(msg string) {
	fmt.Fprintln(h.Writer, msg)
}

// Prompt shows prompt and returns the next sanitized line.
// It returns io.EOF when the input is exhausted, or the context error if ctx ends first.
func (h *TextHandler) Prompt(ctx context.Context, prompt string) (string, error) {
	// Ensure the pump is running
	h.initPump()

	for {
		// Only show prompt if context is not yet done
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, prompt+" ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-h.done:
			return "", io.EOF
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			text := strings.TrimSpace(res.text)

			clean, err := CleanInput(text, h.maxInput)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}
