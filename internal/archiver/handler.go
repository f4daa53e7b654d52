package archiver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jo-hoe/colorstash/internal/common"
)

const mimeText = "text/plain"

var ErrMissingContent = errors.New("event has no content")

type Event struct {
	Content *string `json:"content"`
}

type Response struct {
	Status   string  `json:"status"`
	Filename *string `json:"filename,omitempty"`
}

type Uploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
}

// Handler writes the content of each event to object storage as a text
// object named after the current epoch milliseconds.
type Handler struct {
	uploader Uploader
	keys     *common.KeyGenerator
}

func NewHandler(uploader Uploader) *Handler {
	return &Handler{
		uploader: uploader,
		keys:     common.NewKeyGenerator(),
	}
}

func (h *Handler) Handle(ctx context.Context, event Event) (Response, error) {
	if event.Content == nil {
		slog.Warn("rejected event without content")
		return Response{Status: "error"}, common.E(common.KindInput, "archive content", ErrMissingContent)
	}

	filename := h.keys.Next("txt")
	if err := h.uploader.Upload(ctx, filename, []byte(*event.Content), mimeText); err != nil {
		slog.Error("failed to archive content", "filename", filename, "error", err)
		return Response{Status: "error"}, common.E(common.KindStorage, "archive content", err)
	}

	slog.Info("archived content", "filename", filename, "size_bytes", len(*event.Content))
	return Response{Status: "success", Filename: &filename}, nil
}
