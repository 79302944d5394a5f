package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/tela/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "invalid_color_error",
			code:    errors.ErrInvalidColor,
			message: "bad hex literal",
			wantStr: "[INVALID_COLOR] bad hex literal",
		},
		{
			name:    "template_not_found_error",
			code:    errors.ErrTemplateNotFound,
			message: "no template named status",
			wantStr: "[TEMPLATE_NOT_FOUND] no template named status",
		},
		{
			name:    "cycle_detected_error",
			code:    errors.ErrCycleDetected,
			message: "alias chain loops",
			wantStr: "[CYCLE_DETECTED] alias chain loops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrUnresolvedAlias, "style %q points at missing %q", "critical", "emphasiss")
	want := "style \"critical\" points at missing \"emphasiss\""
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps_underlying_error", func(t *testing.T) {
		inner := stderrors.New("read failed")
		err := errors.Wrap(inner, errors.ErrLoadError, "reading theme file")

		if err.Wrapped != inner {
			t.Error("Wrap() should keep the wrapped error")
		}
		if !stderrors.Is(err, inner) {
			t.Error("errors.Is should find the wrapped error")
		}
		want := "[LOAD_ERROR] reading theme file: read failed"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("nil_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrLoadError, "nothing"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrThemeNotFound, "missing theme")

	if !errors.IsErrorCode(err, errors.ErrThemeNotFound) {
		t.Error("IsErrorCode should match the code")
	}
	if errors.IsErrorCode(err, errors.ErrTemplateNotFound) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrThemeNotFound) {
		t.Error("IsErrorCode should be false for plain errors")
	}

	wrapped := errors.Wrap(err, errors.ErrRenderError, "render failed")
	if !errors.IsErrorCode(wrapped, errors.ErrRenderError) {
		t.Error("IsErrorCode should match the outermost code")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrParseError, "bad yaml")); got != errors.ErrParseError {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrParseError)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrUnresolvedAlias, "dangling alias").
		WithDetail("from", "critical").
		WithDetail("to", "emphasis")

	details := errors.GetErrorDetails(err)
	if details["from"] != "critical" || details["to"] != "emphasis" {
		t.Errorf("details = %v, want from/to entries", details)
	}
}
