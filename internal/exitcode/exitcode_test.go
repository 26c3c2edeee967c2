package exitcode

import (
	"fmt"
	"testing"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"validation error", errors.NewFieldRequiredError("surname"), ValidationError},
		{"credential error", errors.NewCredentialError(nil), AuthError},
		{"not logged in", errors.NewNotLoggedInError(), AuthError},
		{"network error", errors.NewNetworkError(fmt.Errorf("refused")), NetworkError},
		{"storage error", errors.NewStoreUnavailableError(fmt.Errorf("permission denied")), StorageError},
		{"plain error", fmt.Errorf("something broke"), GeneralError},
		{"wrapped coded error", fmt.Errorf("context: %w", errors.NewNotLoggedInError()), AuthError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
