package stdio_chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/humanbelnik/cinebot/internal/model"
	usecase_suggest "github.com/humanbelnik/cinebot/internal/usecase/suggest"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrHandle         = errors.New("failed to handle message")
)

type Controller struct {
	uc *usecase_suggest.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_suggest.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Serve reads one request document from in and writes one reply document to out.
// Nothing is written to out when the request cannot be handled.
func (c *Controller) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		c.logger.Error("failed to read stdin", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	req, err := Decode(data)
	if err != nil {
		c.logger.Error("invalid request body", slog.String("error", err.Error()))
		return err
	}

	resp, err := c.uc.Handle(ctx, req)
	if errors.Is(err, usecase_suggest.ErrMalformedSuggestion) {
		c.logger.Error("invalid request body", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if err != nil {
		c.logger.Error("failed to handle message",
			slog.String("error", err.Error()),
			slog.String("message", req.Message),
		)
		return fmt.Errorf("%w: %w", ErrHandle, err)
	}

	if err := Encode(out, resp); err != nil {
		c.logger.Error("failed to write stdout", slog.String("error", err.Error()))
		return err
	}

	c.logger.Info("reply sent", slog.Int("suggestions", len(resp.Suggestions)))
	return nil
}

// Decode parses the request document. Blank input is an empty request.
func Decode(data []byte) (model.Request, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}

	if !json.Valid(data) {
		return model.Request{}, fmt.Errorf("%w: not a JSON document", ErrMalformedInput)
	}
	if !isObject(data) {
		return model.Request{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedInput, kind(data))
	}

	var dto RequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return model.Request{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	req, err := dto.ConvertToRequest()
	if err != nil {
		return model.Request{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	return req, nil
}

// Encode writes the reply as a single line of JSON with non-ASCII text kept literal.
func Encode(w io.Writer, resp model.Response) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(ConvertFromResponse(resp)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
