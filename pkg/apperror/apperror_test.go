package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad weight"), http.StatusBadRequest},
		{Unauthorized("bad credentials"), http.StatusUnauthorized},
		{PermissionDenied("owners only"), http.StatusForbidden},
		{NotFound("no such job"), http.StatusNotFound},
		{Conflict("already assigned"), http.StatusConflict},
		{errors.New("driver exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v): expected %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestStatusCode_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("assign job: %w", Conflict("already assigned"))
	if got := StatusCode(wrapped); got != http.StatusConflict {
		t.Errorf("expected %d for wrapped conflict, got %d", http.StatusConflict, got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("job %s not found", "abc")
	if err.Error() != "job abc not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("unexpected kind: %v", KindOf(err))
	}
}
