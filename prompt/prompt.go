package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoMoreAnswers = errors.New("no more scripted answers")

// Provider answers the questions asked during a release.
type Provider interface {
	Ask(ctx context.Context, question string) (string, error)
}

type Console struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Provider = (*Console)(nil)

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *Console) Ask(_ context.Context, question string) (string, error) {
	if _, err := fmt.Fprint(c.out, question); err != nil {
		return "", fmt.Errorf("failed to write question: %w", err)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read answer to %q: %w", question, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Scripted replays a fixed list of answers, in order.
type Scripted struct {
	answers   []string
	Questions []string
}

var _ Provider = (*Scripted)(nil)

func NewScripted(answers ...string) *Scripted {
	return &Scripted{
		answers: answers,
	}
}

func (s *Scripted) Ask(_ context.Context, question string) (string, error) {
	s.Questions = append(s.Questions, question)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoMoreAnswers, question)
	}
	ret := s.answers[0]
	s.answers = s.answers[1:]
	return ret, nil
}

// AskChoice repeats question until the answer is exactly one of choices.
func AskChoice(ctx context.Context, p Provider, question string, choices []string, onInvalid func(answer string)) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		answer, err := p.Ask(ctx, question)
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if answer == c {
				return answer, nil
			}
		}
		if onInvalid != nil {
			onInvalid(answer)
		}
	}
}
