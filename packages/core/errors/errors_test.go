package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound(EntityPlayer, 7))

	if !stderrors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped not found to match ErrNotFound")
	}
	if stderrors.Is(err, ErrValidationFailed) {
		t.Fatal("did not expect not found to match ErrValidationFailed")
	}

	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		t.Fatal("expected errors.As to find *Error")
	}
	if domainErr.Entity != EntityPlayer || domainErr.ID == nil || *domainErr.ID != 7 {
		t.Fatalf("unexpected context: entity=%q id=%v", domainErr.Entity, domainErr.ID)
	}
}

func TestPersistenceWrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	id := uint(3)
	err := Persistence("update", EntityTeamAssignment, &id, cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if !stderrors.Is(err, ErrPersistenceFailure) {
		t.Fatal("expected persistence failure code")
	}
	for _, part := range []string{"update", EntityTeamAssignment, "3", "connection refused"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("message %q missing %q", err.Error(), part)
		}
	}

	noID := Persistence("add", EntityPlayer, nil, cause)
	if noID.ID != nil {
		t.Fatal("expected nil id")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound(EntityPlayer, 1), http.StatusNotFound},
		{ValidationFailed(EntityPlayer, map[string][]string{"name": {"is required"}}), http.StatusUnprocessableEntity},
		{DuplicateActiveAssignment(1, "Eagles", "Spring League"), http.StatusConflict},
		{Persistence("delete", EntityPlayer, nil, nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Fatalf("%s status = %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestDuplicateActiveAssignmentContext(t *testing.T) {
	err := DuplicateActiveAssignment(4, "Eagles", "Spring League")

	if err.Entity != EntityTeamAssignment || err.ID != nil {
		t.Fatalf("entity=%q id=%v, want %q and no id", err.Entity, err.ID, EntityTeamAssignment)
	}
	for _, part := range []string{"player 4", `"Eagles"`, `"Spring League"`} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("message %q missing %q", err.Error(), part)
		}
	}
	if _, ok := err.Fields["team_name"]; !ok {
		t.Fatalf("fields = %v, want team_name", err.Fields)
	}
}
