package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/tetrator/internal/logging"
	"github.com/aretw0/tetrator/internal/presentation/text"
	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/aretw0/tetrator/pkg/tetration"
)

// Computer evaluates a request. *tetrator.Service implements it.
type Computer interface {
	Compute(ctx context.Context, req domain.Request) domain.Outcome
}

// Action is a menu entry.
type Action int

const (
	ActionCompute Action = iota
	ActionExit
)

var menu = []struct {
	action Action
	label  string
}{
	{ActionCompute, StartCompute},
	{ActionExit, Exit},
}

// Session is the interactive read-evaluate-print loop.
type Session struct {
	computer Computer
	handler  *TextHandler
	calc     *tetration.Calculator
	logger   *slog.Logger
}

// SessionOption defines configuration for Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger used for diagnostics.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session reading and writing through handler.
func NewSession(computer Computer, handler *TextHandler, opts ...SessionOption) *Session {
	s := &Session{
		computer: computer,
		handler:  handler,
		calc:     tetration.NewCalculator(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user exits or the input ends.
// End of input is a normal exit; a cancelled context is returned as an error.
func (s *Session) Run(ctx context.Context) error {
	s.handler.Println(Welcome)

	for {
		action, err := s.selectAction(ctx)
		if err != nil {
			return s.finish(err)
		}

		switch action {
		case ActionCompute:
			if err := s.compute(ctx); err != nil {
				return s.finish(err)
			}
		case ActionExit:
			s.handler.Println(Bye)
			return nil
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.handler.Println("")
		s.handler.Println(Bye)
		return nil
	}
	return err
}

// selectAction shows the menu and reads a choice. An empty line picks the first entry.
func (s *Session) selectAction(ctx context.Context) (Action, error) {
	for {
		for i, item := range menu {
			s.handler.Println(fmt.Sprintf("  %d) %s", i+1, item.label))
		}

		line, err := s.handler.Prompt(ctx, OptionSelect)
		if err != nil {
			return 0, err
		}

		if action, ok := parseSelection(line); ok {
			return action, nil
		}
		s.handler.Println(InvalidSelection)
	}
}

func parseSelection(line string) (Action, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return menu[0].action, true
	}
	for i, item := range menu {
		if line == fmt.Sprint(i+1) || line == strings.ToLower(item.label) {
			return item.action, true
		}
	}
	switch line {
	case "q", "quit":
		return ActionExit, true
	}
	return 0, false
}

// compute reads both fields before reporting, so the user sees every problem at once.
func (s *Session) compute(ctx context.Context) error {
	baseLine, err := s.handler.Prompt(ctx, EnterBase)
	if err != nil {
		return err
	}
	heightLine, err := s.handler.Prompt(ctx, EnterHeight)
	if err != nil {
		return err
	}

	base, baseErr := parsePositive(baseLine)
	if baseErr == nil {
		s.calc.SetBase(base)
	}
	height, heightErr := parsePositive(heightLine)
	if heightErr == nil {
		s.calc.SetHeight(height)
	}

	switch {
	case baseErr != nil && heightErr != nil:
		s.handler.Println(InvalidBaseAndHeight)
		s.handler.Println("Base Error: " + fieldMessage(baseErr, InvalidBaseMessage))
		s.handler.Println("Height Error: " + fieldMessage(heightErr, InvalidHeightMessage))
		return nil
	case baseErr != nil:
		s.handler.Println(InvalidBaseInput)
		s.handler.Println("Base Error: " + fieldMessage(baseErr, InvalidBaseMessage))
		return nil
	case heightErr != nil:
		s.handler.Println(InvalidHeightInput)
		s.handler.Println("Height Error: " + fieldMessage(heightErr, InvalidHeightMessage))
		return nil
	}

	req := domain.Request{Base: *s.calc.Base(), Height: *s.calc.Height()}
	out := s.computer.Compute(ctx, req)
	s.logger.Debug("Interactive evaluation", "request", req.Key(), "ok", out.OK(), "cached", out.Cached)
	s.present(&out)
	return nil
}

func fieldMessage(err error, zeroMessage string) string {
	if errors.Is(err, ErrZeroInput) {
		return zeroMessage
	}
	return InvalidInputUnreadable
}

func (s *Session) present(out *domain.Outcome) {
	if s.handler.Renderer != nil {
		s.handler.Output(text.Markdown(out))
		return
	}
	s.handler.Println(text.Plain(out))
}
