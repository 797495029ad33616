package errx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
)

var (
	testRegistry = errx.NewRegistry("TEST")

	errThing = testRegistry.Register("THING_FAILED", errx.TypeExternal, 0, "thing failed")
	errOther = testRegistry.Register("OTHER", errx.TypeValidation, 422, "other")
)

func TestRegister_PrefixesCodeAndDefaultsStatus(t *testing.T) {
	if errThing.Code != "TEST_THING_FAILED" {
		t.Fatalf("expected prefixed code, got %s", errThing.Code)
	}
	if errThing.HTTPStatus != 502 {
		t.Fatalf("expected status from type, got %d", errThing.HTTPStatus)
	}
	if errOther.HTTPStatus != 422 {
		t.Fatalf("explicit status should win, got %d", errOther.HTTPStatus)
	}
}

func TestHasCode_FollowsWrapChain(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", testRegistry.NewWithCause(errThing, cause))

	if !errx.HasCode(err, errThing) {
		t.Fatal("expected HasCode to find wrapped code")
	}
	if errx.HasCode(err, errOther) {
		t.Fatal("unexpected match for a different code")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause should stay reachable through Unwrap")
	}
}

func TestOwns(t *testing.T) {
	if !testRegistry.Owns("TEST_OTHER") {
		t.Fatal("registry should own its codes")
	}
	if testRegistry.Owns("TEST_MISSING") || testRegistry.Owns("OTHER_OTHER") {
		t.Fatal("registry should not own unknown codes")
	}
}

func TestFrom_WrapsPlainErrors(t *testing.T) {
	e := errx.From(errors.New("plain"))
	if e.Type != errx.TypeInternal || e.HTTPStatus != 500 {
		t.Fatalf("expected internal error, got %+v", e)
	}
	if errx.From(nil) != nil {
		t.Fatal("From(nil) should be nil")
	}
}

func TestToHTTPResponse(t *testing.T) {
	e := testRegistry.New(errOther).WithDetail("field", "subject")
	resp := e.ToHTTPResponse("req-1")

	if resp.Code != "TEST_OTHER" || resp.StatusCode != 422 || resp.RequestID != "req-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Details["field"] != "subject" {
		t.Fatalf("expected details to be carried, got %+v", resp.Details)
	}
}
