package landingcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/generation"
	"github.com/goliatone/go-landing/internal/landingpages"
	"github.com/goliatone/go-landing/internal/publishing"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// PageReader loads landing pages.
type PageReader interface {
	Get(ctx context.Context, id uuid.UUID) (*landingpages.LandingPage, error)
}

// ContentSaver persists edited documents.
type ContentSaver interface {
	SaveContent(ctx context.Context, req landingpages.SaveContentRequest) (*landingpages.LandingPage, error)
}

// Generator produces landing page content.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// Publisher publishes and exports pages.
type Publisher interface {
	Publish(ctx context.Context, req publishing.PublishRequest) (*publishing.PublishResult, error)
	Export(ctx context.Context, id uuid.UUID) (*publishing.Export, error)
}

// GeneratePageHandler runs generation for a stored page.
type GeneratePageHandler struct {
	inner *commands.Handler[GeneratePageCommand]
}

func NewGeneratePageHandler(pages PageReader, generator Generator, logger interfaces.Logger, opts ...commands.HandlerOption[GeneratePageCommand]) *GeneratePageHandler {
	exec := func(ctx context.Context, msg GeneratePageCommand) error {
		page, err := pages.Get(ctx, msg.LandingPageID)
		if err != nil {
			return err
		}
		_, err = generator.Generate(ctx, requestFor(page, msg))
		return err
	}
	handlerOpts := []commands.HandlerOption[GeneratePageCommand]{
		commands.WithLogger[GeneratePageCommand](logger),
		commands.WithOperation[GeneratePageCommand]("pages.generate"),
		commands.WithTimeout[GeneratePageCommand](generation.DefaultTimeout + commands.DefaultTimeout),
	}
	return &GeneratePageHandler{
		inner: commands.NewHandler[GeneratePageCommand](exec, append(handlerOpts, opts...)...),
	}
}

func (h *GeneratePageHandler) Execute(ctx context.Context, msg GeneratePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

func requestFor(page *landingpages.LandingPage, msg GeneratePageCommand) generation.Request {
	return generation.Request{
		LandingPageID:        page.ID,
		ActorID:              msg.ActorID,
		Title:                page.Title,
		Description:          page.Description,
		DocumentText:         firstNonEmpty(msg.DocumentText, page.SourceText),
		ContentDocumentURL:   page.ContentDocumentURL,
		WireframeURL:         page.WireframeURL,
		DesignInspirationURL: page.DesignInspirationURL,
		Tone:                 firstNonEmpty(msg.Tone, page.Tone),
		Language:             firstNonEmpty(msg.Language, page.Language),
		TargetAudience:       firstNonEmpty(msg.TargetAudience, page.TargetAudience),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// SaveContentHandler persists an edited document and its render.
type SaveContentHandler struct {
	inner *commands.Handler[SaveContentCommand]
}

func NewSaveContentHandler(pages ContentSaver, logger interfaces.Logger, opts ...commands.HandlerOption[SaveContentCommand]) *SaveContentHandler {
	exec := func(ctx context.Context, msg SaveContentCommand) error {
		_, err := pages.SaveContent(ctx, landingpages.SaveContentRequest{
			ID:       msg.LandingPageID,
			ActorID:  msg.ActorID,
			Document: msg.Document,
		})
		return err
	}
	handlerOpts := []commands.HandlerOption[SaveContentCommand]{
		commands.WithLogger[SaveContentCommand](logger),
		commands.WithOperation[SaveContentCommand]("pages.save_content"),
	}
	return &SaveContentHandler{
		inner: commands.NewHandler[SaveContentCommand](exec, append(handlerOpts, opts...)...),
	}
}

func (h *SaveContentHandler) Execute(ctx context.Context, msg SaveContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PublishPageHandler publishes a page to WordPress.
type PublishPageHandler struct {
	inner *commands.Handler[PublishPageCommand]
}

func NewPublishPageHandler(publisher Publisher, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	exec := func(ctx context.Context, msg PublishPageCommand) error {
		_, err := publisher.Publish(ctx, publishing.PublishRequest{
			ID:          msg.LandingPageID,
			ActorID:     msg.ActorID,
			Credentials: msg.Credentials,
			Status:      msg.Status,
			Slug:        msg.Slug,
		})
		return err
	}
	handlerOpts := []commands.HandlerOption[PublishPageCommand]{
		commands.WithLogger[PublishPageCommand](logger),
		commands.WithOperation[PublishPageCommand]("pages.publish"),
	}
	return &PublishPageHandler{
		inner: commands.NewHandler[PublishPageCommand](exec, append(handlerOpts, opts...)...),
	}
}

func (h *PublishPageHandler) Execute(ctx context.Context, msg PublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportPageHandler writes a page to <dir>/<slug>.html.
type ExportPageHandler struct {
	inner *commands.Handler[ExportPageCommand]
}

func NewExportPageHandler(publisher Publisher, logger interfaces.Logger, opts ...commands.HandlerOption[ExportPageCommand]) *ExportPageHandler {
	exec := func(ctx context.Context, msg ExportPageCommand) error {
		export, err := publisher.Export(ctx, msg.LandingPageID)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(msg.Dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		return os.WriteFile(filepath.Join(msg.Dir, export.Filename), []byte(export.HTML), 0o644)
	}
	handlerOpts := []commands.HandlerOption[ExportPageCommand]{
		commands.WithLogger[ExportPageCommand](logger),
		commands.WithOperation[ExportPageCommand]("pages.export"),
	}
	return &ExportPageHandler{
		inner: commands.NewHandler[ExportPageCommand](exec, append(handlerOpts, opts...)...),
	}
}

func (h *ExportPageHandler) Execute(ctx context.Context, msg ExportPageCommand) error {
	return h.inner.Execute(ctx, msg)
}
