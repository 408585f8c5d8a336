package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	rootModule       = "landing"
	pagesModule      = "landing.pages"
	generationModule = "landing.generation"
	editorModule     = "landing.editor"
	publishingModule = "landing.publishing"
	assetsModule     = "landing.assets"
)

const (
	fieldLandingPage   = "landing_page_id"
	fieldEditorSession = "session_id"
)

// ModuleLogger returns the provider's logger for module tagged with a
// "module" field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}
	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// PagesLogger scopes a logger to landing page persistence.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// GenerationLogger scopes a logger to the content generator.
func GenerationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generationModule)
}

// EditorLogger scopes a logger to editing sessions and autosave.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// PublishingLogger scopes a logger to WordPress publishing and export.
func PublishingLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, publishingModule)
}

// AssetsLogger scopes a logger to uploads and text extraction.
func AssetsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, assetsModule)
}

// WithLandingPage tags entries with the landing page id.
func WithLandingPage(logger interfaces.Logger, id string) interfaces.Logger {
	if strings.TrimSpace(id) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldLandingPage: id})
}

// WithSession tags entries with an editor session id.
func WithSession(logger interfaces.Logger, id string) interfaces.Logger {
	if strings.TrimSpace(id) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldEditorSession: id})
}

// WithFields attaches fields when the logger implements FieldsLogger and
// returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(interfaces.FieldsLogger); ok {
		return fl.WithFields(maps.Clone(fields))
	}
	return logger
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
