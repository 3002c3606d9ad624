
package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "transform_error",
			code:    errors.ErrTransform,
			message: "unexpected token",
			wantStr: "[TRANSFORM_FAILED] unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrDirCreate, "cannot create %s with mode %o", "dist", 0755)
	assert.Equal(t, "cannot create dist with mode 755", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileWrite, "write failed")

		assert.Equal(t, errors.ErrFileWrite, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_WRITE] write failed: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "not found").
		WithDetail("path", "/src/app.js").
		WithDetail("task", "minify-js")

	assert.Equal(t, "/src/app.js", err.Details["path"])
	assert.Equal(t, "minify-js", err.Details["task"])

	err = err.WithDetails(map[string]interface{}{"size": 1024})
	assert.Equal(t, 1024, errors.GetErrorDetails(err)["size"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "not found"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "not found"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrTransform, errors.GetErrorCode(errors.New(errors.ErrTransform, "bad css")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := fs.ErrPermission
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	buildErr := errors.Wrap(fileErr, errors.ErrBuildFailed, "build failed")

	require.True(t, errors.IsErrorCode(buildErr, errors.ErrBuildFailed))

	var middle *errors.DodistError
	require.True(t, stderrors.As(buildErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileAccess, middle.Code)

	assert.True(t, stderrors.Is(buildErr, fs.ErrPermission))
}

func TestForPath(t *testing.T) {
	t.Run("missing_path_is_not_found", func(t *testing.T) {
		err := errors.ForPath(fs.ErrNotExist, errors.ErrFileAccess, "/src/gone.js")
		assert.Equal(t, errors.ErrNotFound, err.Code)
		assert.Equal(t, "/src/gone.js", err.Path())
		assert.Equal(t, "[NOT_FOUND] /src/gone.js does not exist: file does not exist", err.Error())
	})

	t.Run("code_is_kept_otherwise", func(t *testing.T) {
		err := errors.ForPath(fs.ErrPermission, errors.ErrDirCreate, "/out/css")
		assert.Equal(t, errors.ErrDirCreate, err.Code)
		assert.Equal(t, "cannot create directory /out/css", err.Message)
		assert.True(t, stderrors.Is(err, fs.ErrPermission))
	})

	t.Run("unlisted_code", func(t *testing.T) {
		err := errors.ForPath(fs.ErrClosed, errors.ErrInternal, "/x")
		assert.Equal(t, "cannot access /x", err.Message)
	})

	t.Run("nil_error", func(t *testing.T) {
		assert.Nil(t, errors.ForPath(nil, errors.ErrFileWrite, "/x"))
	})
}
