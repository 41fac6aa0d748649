package golistview

import (
	"errors"
	"testing"
)

func Test_FetchError(t *testing.T) {
	cause := errors.New("timeout")

	tests := []struct {
		name string
		err  *FetchError
		want string
	}{
		{"refresh", &FetchError{Refresh: true, Err: cause}, "refresh fetch failed: timeout"},
		{"page", &FetchError{Err: cause}, "page fetch failed: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("%s: Error()=%q want %q", tt.name, got, tt.want)
			}
			if !errors.Is(tt.err, cause) {
				t.Errorf("%s: must unwrap to the cause", tt.name)
			}
		})
	}
}
