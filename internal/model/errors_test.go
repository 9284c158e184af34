package model

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := NewError(ErrCodeInvalidInput, "bad item %q", "x")
	assert.Equal(t, `INVALID_INPUT: bad item "x"`, err.Error())

	wrapped := WrapError(ErrCodeFileNotFound, os.ErrNotExist, "open %s", "room.json")
	assert.Equal(t, "FILE_NOT_FOUND: open room.json: file does not exist", wrapped.Error())
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	base := NewError(ErrCodeInvalidGeometry, "no area")
	err := fmt.Errorf("loading scenario: %w", base)

	assert.True(t, IsCode(err, ErrCodeInvalidGeometry))
	assert.False(t, IsCode(err, ErrCodeInvalidInput))
	assert.Equal(t, ErrCodeInvalidGeometry, CodeOf(err))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.False(t, IsCode(nil, ErrCodeInvalidInput))
}
