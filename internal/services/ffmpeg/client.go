package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"scrub/internal/config"
	"scrub/internal/execution"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions. It implements execution.MediaProcessor:
// one Process call builds and runs a single ffmpeg invocation covering both
// tracks, so the output is produced in one encode pass instead of two
// destructive ones.
type Client struct {
	binary   string
	encoders encoderSettings
	exec     Executor
}

type encoderSettings struct {
	videoEncoder string
	audioEncoder string
	preset       string
	crf          int
}

// New constructs an ffmpeg client from validated configuration.
func New(cfg config.FFmpeg, opts ...Option) *Client {
	client := &Client{
		binary: cfg.Binary,
		encoders: encoderSettings{
			videoEncoder: cfg.VideoEncoder,
			audioEncoder: cfg.AudioEncoder,
			preset:       cfg.Preset,
			crf:          cfg.CRF,
		},
		exec: commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Process executes ffmpeg for the given request. Captured stderr is returned
// as diagnostics on success and failure alike; classification of failures is
// the executor's concern.
func (c *Client) Process(ctx context.Context, req execution.Request) (execution.ProcessResult, error) {
	if strings.TrimSpace(req.InputPath) == "" {
		return execution.ProcessResult{}, errors.New("ffmpeg: empty input path")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return execution.ProcessResult{}, errors.New("ffmpeg: empty output path")
	}
	args, err := buildArgs(req, c.encoders)
	if err != nil {
		return execution.ProcessResult{}, err
	}
	diagnostics, runErr := c.exec.Run(ctx, c.binary, args)
	return execution.ProcessResult{Diagnostics: diagnostics}, runErr
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
