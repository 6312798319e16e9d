package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{
			path: "/api/v1/orders",
			want: "/api/v1/orders",
		},
		{
			path: "/api/v1/orders/3f1e1c1a-0000-4000-8000-000000000001",
			want: "/api/v1/orders/:guid",
		},
		{
			path: "/api/v1/users/00000000000000a5",
			want: "/api/v1/users/:id",
		},
		{
			path: "/",
			want: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}

func TestStatusResponseWriter(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		w := NewStatusResponseWriter(httptest.NewRecorder())
		_, err := w.Write([]byte("hello"))
		assert.NoError(t, err)
		assert.Equal(t, 200, w.Code())
		assert.Equal(t, 5, w.ResponseBytes())
		assert.Equal(t, "2XX", w.StatusCodeClass())
	})

	t.Run("explicit status", func(t *testing.T) {
		w := NewStatusResponseWriter(httptest.NewRecorder())
		w.WriteHeader(422)
		assert.Equal(t, 422, w.Code())
		assert.Equal(t, "4XX", w.StatusCodeClass())
	})
}
