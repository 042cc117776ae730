package pagecap_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pagecap"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagecap.Errorf(pagecap.ENOTFOUND, "clip %q not found", "test")

	assert.Equal(t, pagecap.ENOTFOUND, pagecap.ErrorCode(err))
	assert.Equal(t, "clip \"test\" not found", pagecap.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagecap.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching payload: %w", pagecap.Errorf(pagecap.EUNAVAILABLE, "host unreachable"))

	assert.Equal(t, pagecap.EUNAVAILABLE, pagecap.ErrorCode(err))
	assert.Equal(t, "host unreachable", pagecap.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pagecap.EINTERNAL, pagecap.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagecap.ErrorMessage(nil))
}
