package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"clinic-booking-server/internal/scheduling"
)

func TestRespondSchedulingErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{scheduling.ErrUnauthenticated, http.StatusUnauthorized},
		{scheduling.ErrAccessDenied, http.StatusForbidden},
		{scheduling.ErrDoctorNotFound, http.StatusNotFound},
		{scheduling.ErrWorkingHoursNotFound, http.StatusNotFound},
		{scheduling.ErrConflict, http.StatusConflict},
		{scheduling.ErrInvalidSlot, http.StatusBadRequest},
		{scheduling.ErrAlreadyCancelled, http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		respondSchedulingError(ctx, c.err)
		if w.Code != c.want {
			t.Errorf("%v: want status %d, got %d", c.err, c.want, w.Code)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	for _, s := range []string{"2025-01-06T09:00", "2025-01-06T09:00:00"} {
		ts, err := parseDateTime(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if ts.Hour() != 9 || ts.Minute() != 0 {
			t.Errorf("parse %q: got %v", s, ts)
		}
	}
	if _, err := parseDateTime("06/01/2025 09:00"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
