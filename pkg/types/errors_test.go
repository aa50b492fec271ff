package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	wrapped := &Error{Kind: ErrKindNotFound, Msg: `key "x" not found`, Err: ErrNotFound}
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped error should match ErrNotFound")
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should hold for wrapped not-found")
	}

	deeper := fmt.Errorf("opening: %w", wrapped)
	if !IsNotFound(deeper) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}
}

func TestNoMoreItemsDistinctFromNotFound(t *testing.T) {
	if !IsNotFound(ErrNoMoreItems) {
		t.Error("ErrNoMoreItems carries the not-found kind")
	}
	if !IsNoMoreItems(ErrNoMoreItems) {
		t.Error("IsNoMoreItems should match its own sentinel")
	}
	if IsNoMoreItems(ErrNotFound) {
		t.Error("ErrNotFound must not satisfy IsNoMoreItems")
	}
}

func TestIsPermission(t *testing.T) {
	if !IsPermission(ErrAccessDenied) {
		t.Error("ErrAccessDenied should satisfy IsPermission")
	}
	structural := &Error{Kind: ErrKindPermission, Msg: "cannot delete a key that has subkeys", Err: ErrAccessDenied}
	if !IsPermission(structural) {
		t.Error("structural violation should satisfy IsPermission")
	}
	if IsPermission(ErrNotFound) {
		t.Error("ErrNotFound must not satisfy IsPermission")
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: ErrKindOS, Msg: "registry", Err: errors.New("boom")}
	if got := e.Error(); got != "registry: boom" {
		t.Errorf("Error() = %q", got)
	}
	bare := &Error{Kind: ErrKindState, Msg: "key is not open"}
	if got := bare.Error(); got != "key is not open" {
		t.Errorf("Error() = %q", got)
	}
}
