package transport

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{app.ErrSourceUnconfigured, http.StatusServiceUnavailable},
		{&app.ProbeError{Kind: app.ProbeBadContentType, ContentType: "text/html"}, http.StatusNotAcceptable},
		{fmt.Errorf("%w: %q", app.ErrUnknownGroup, "НЕТ-99"), http.StatusNotFound},
		{fmt.Errorf("%w: %q", app.ErrUnknownTeacher, "Никто"), http.StatusNotFound},
		{app.NewParseError(1, 1, app.ErrMissingTimeRange), http.StatusInternalServerError},
		{fmt.Errorf("%w: empty file", ErrBadRequest), http.StatusBadRequest},
	}

	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
