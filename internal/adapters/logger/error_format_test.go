package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/jopts/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
		{
			name: "standard error",
			err:  errors.New("simple"),
			want: []logger.ErrorEntry{{Message: "simple"}},
		},
		{
			name: "wrapped chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{}},
				{Message: "middle", Metadata: map[string]any{}},
				{Message: "root"},
			},
		},
		{
			name: "metadata accumulates on one link",
			err:  zerr.With(zerr.With(zerr.New("base"), "a", 1), "b", "two"),
			want: []logger.ErrorEntry{
				{Message: "base", Metadata: map[string]any{"a": 1, "b": "two"}},
			},
		},
		{
			name: "anonymous link attaches to previous entry",
			err:  zerr.Wrap(zerr.With(errors.New("denied"), "path", "/x"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{"path": "/x"}},
				{Message: "denied"},
			},
		},
		{
			name: "leading anonymous link attaches to next entry",
			err:  zerr.With(errors.New("denied"), "path", "/x"),
			want: []logger.ErrorEntry{
				{Message: "denied", Metadata: map[string]any{"path": "/x"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name: "causes",
			entries: []logger.ErrorEntry{
				{Message: "first"},
				{Message: "second"},
				{Message: "third"},
			},
			want: "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "sorted metadata on main error",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a"}},
			},
			want: "Error: error\n       alpha: a\n       zebra: z",
		},
		{
			name: "metadata and multiline on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause line1\ncause line2", Metadata: map[string]any{"k": 1}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2\n      k: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
