package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		want   *int64
	}{
		{name: "valid id", header: "42", want: ptr(int64(42))},
		{name: "missing header", header: "", want: nil},
		{name: "malformed id is ignored", header: "abc", want: nil},
		{name: "non-positive id is ignored", header: "0", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *int64
			engine := gin.New()
			engine.Use(ActorMiddleware())
			engine.GET("/probe", func(c *gin.Context) {
				got = StaffIDFromContext(c)
				c.Status(200)
			})

			req := httptest.NewRequest("GET", "/probe", nil)
			if tt.header != "" {
				req.Header.Set("X-Staff-ID", tt.header)
			}
			engine.ServeHTTP(httptest.NewRecorder(), req)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
