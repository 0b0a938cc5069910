package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", types.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(errors.New("context"), types.ErrNotFound), http.StatusNotFound},
		{"conflict", types.ErrConflict, http.StatusConflict},
		{"validation", types.Validationf("bad percentage"), http.StatusBadRequest},
		{"infrastructure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondServiceError(c, tc.err)

			if rec.Code != tc.want {
				t.Fatalf("status: want=%d got=%d", tc.want, rec.Code)
			}
		})
	}
}
