package menuerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindFetchNotFound, http.StatusNotFound},
		{KindFetchTimeout, http.StatusGatewayTimeout},
		{KindFetchUpstream, http.StatusBadGateway},
		{KindUnsupportedMedia, http.StatusUnsupportedMediaType},
		{KindUnprocessableContent, http.StatusUnprocessableEntity},
		{KindSubserviceTimeout, http.StatusGatewayTimeout},
		{KindSubserviceUnavailable, http.StatusBadGateway},
		{KindAIProtocol, http.StatusInternalServerError},
		{KindAIService, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.kind.HTTPStatus(); got != tc.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatusOverride(t *testing.T) {
	err := &Error{Kind: KindAIService, Message: "rate limited", Status: http.StatusTooManyRequests}
	if got := HTTPStatus(err); got != http.StatusTooManyRequests {
		t.Errorf("HTTPStatus() = %d, want %d", got, http.StatusTooManyRequests)
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(New(KindFetchNotFound, "gone")); got != KindFetchNotFound {
		t.Errorf("Classify() = %s, want %s", got, KindFetchNotFound)
	}
	if got := Classify(errors.New("plain")); got != KindInternal {
		t.Errorf("Classify(plain error) = %s, want %s", got, KindInternal)
	}

	// Kind survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("outer: %w", New(KindUnsupportedMedia, "bad type"))
	if got := Classify(wrapped); got != KindUnsupportedMedia {
		t.Errorf("Classify(wrapped) = %s, want %s", got, KindUnsupportedMedia)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindFetchUpstream, "fetching", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped error does not expose its cause")
	}
}
