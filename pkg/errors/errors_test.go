// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/stattab/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unknown_header_error",
			code:    errors.ErrUnknownHeader,
			message: `wrong header key "nope"`,
			wantStr: `[UNKNOWN_HEADER] wrong header key "nope"`,
		},
		{
			name:    "row_arity_error",
			code:    errors.ErrRowArity,
			message: "incorrect stat quantity (2 != 3)",
			wantStr: "[ROW_ARITY] incorrect stat quantity (2 != 3)",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
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

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrap(inner, errors.ErrFileWrite, "writing statistics file")

	if !stderrors.Is(err, inner) {
		t.Error("wrapped error should match errors.Is against the inner error")
	}

	want := "[FILE_WRITE] writing statistics file: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrFileWrite, "noop") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestIsByCode(t *testing.T) {
	err := errors.Newf(errors.ErrNoCurrentRow, "no stat available")

	if !stderrors.Is(err, errors.New(errors.ErrNoCurrentRow, "")) {
		t.Error("errors.Is should match on equal codes")
	}
	if stderrors.Is(err, errors.New(errors.ErrRowArity, "")) {
		t.Error("errors.Is should not match on different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrDuplicateBinding, `header key "count" is bound`)

	if !errors.IsErrorCode(err, errors.ErrDuplicateBinding) {
		t.Error("IsErrorCode should match the error's code")
	}
	if errors.IsErrorCode(err, errors.ErrUnknownHeader) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrUnknown) {
		t.Error("IsErrorCode should be false for non-StatError values")
	}

	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.GetErrorCode(err); got != errors.ErrDuplicateBinding {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrDuplicateBinding)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrRowArity, "incorrect stat quantity").
		WithDetail("got", 2).
		WithDetail("want", 3)

	if err.Details["got"] != 2 || err.Details["want"] != 3 {
		t.Errorf("WithDetail() details = %v", err.Details)
	}
}
