package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/spivocab/internal/vocabulary"
)

var (
	errEnd = errors.New("end")

	// ErrEmptyCatalog is returned when a session is started without any word.
	ErrEmptyCatalog = errors.New("the word catalog is empty")
)

// InteractiveQuizCLI contains shared logic for interactive sessions
type InteractiveQuizCLI struct {
	catalog      *vocabulary.Catalog
	words        []vocabulary.Word
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

// newInteractiveQuizCLI starts a session at the 1-based position start
func newInteractiveQuizCLI(catalog *vocabulary.Catalog, start int) (*InteractiveQuizCLI, int, error) {
	if catalog == nil || catalog.IsEmpty() {
		return nil, 0, ErrEmptyCatalog
	}
	if start < 1 || start > catalog.Len() {
		return nil, 0, fmt.Errorf("start must be between 1 and %d, got %d", catalog.Len(), start)
	}

	return &InteractiveQuizCLI{
		catalog:      catalog,
		words:        catalog.Words(),
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}, start - 1, nil
}

//go:generate mockgen -source=interactive_quiz_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

func (cli *InteractiveQuizCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readInput reads one trimmed line. The end of the input ends the session.
func (cli *InteractiveQuizCLI) readInput() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
		return "", errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (cli *InteractiveQuizCLI) progress(index int) string {
	return fmt.Sprintf("%d / %d", index+1, len(cli.words))
}

// clamp keeps index within the catalog
func (cli *InteractiveQuizCLI) clamp(index int) int {
	return max(0, min(index, len(cli.words)-1))
}

func orDefault(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "なし"
	}
	return strings.Join(values, "、")
}
