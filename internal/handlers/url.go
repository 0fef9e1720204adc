package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Shortener is the behaviour URLHandler needs from the shortening service.
type Shortener interface {
	Shorten(ctx context.Context, rawURL string) (*shortener.Link, error)
	Resolve(ctx context.Context, code shortener.Code) (string, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service Shortener
	logger  *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(service Shortener, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service: service,
		logger:  logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	link, err := h.service.Shorten(ctx, req.Body.LongURL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest(err.Error())
		case errors.Is(err, shortener.ErrCodeGenerationExhausted):
			h.logger.Error("short code generation exhausted", zap.Error(err))

			return nil, huma.Error503ServiceUnavailable("could not allocate a short code, try again")
		default:
			h.logger.Error("failed to shorten url", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to shorten url")
		}
	}

	resp := &CreateShortURLResponse{}
	resp.Location = link.ShortURL
	resp.Body.ShortURL = link.ShortURL
	resp.Body.Code = string(link.Code)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to resolve code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	return &RedirectResponse{
		Status:   http.StatusMovedPermanently,
		Location: longURL,
	}, nil
}
