package console

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var (
	// ErrAborted is returned when the operator interrupts a prompt.
	ErrAborted = errors.New("console: prompt aborted")
)

type SelectConfig struct {
	Message  string
	Options  []string
	Help     string
	PageSize int
}

// PromptDriver asks the operator questions. The survey implementation talks
// to the terminal, tests supply their own.
type PromptDriver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

type surveyDriver struct{}

func NewSurveyDriver() PromptDriver {
	return &surveyDriver{}
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err //nolint:wrapcheck // unnecessary
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
