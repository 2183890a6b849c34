package assistant

import (
	"fmt"
	"testing"
)

func TestSessionAppendsInOrder(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.AddUserTurn("what trials study diabetes?")
	session.AddAssistantTurn(&Response{Answer: "One Phase 2 trial."})

	history := session.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != RoleUser || history[1].Role != RoleAssistant {
		t.Errorf("roles = %s, %s", history[0].Role, history[1].Role)
	}
}

func TestSessionTrimsOldestTurns(t *testing.T) {
	t.Parallel()

	session := NewSession()
	for i := 0; i < MaxHistoryLength+4; i++ {
		session.AddUserTurn(fmt.Sprintf("question %d", i))
	}

	history := session.History()
	if len(history) != MaxHistoryLength {
		t.Fatalf("history length = %d, want %d", len(history), MaxHistoryLength)
	}
	if history[0].Message != "question 4" {
		t.Errorf("oldest retained turn = %q, want question 4", history[0].Message)
	}
}

func TestSessionClearKeepsID(t *testing.T) {
	t.Parallel()

	session := NewSession()
	id := session.ID()
	if id == "" {
		t.Fatal("empty session id")
	}

	session.AddUserTurn("hello")
	session.Clear()

	if len(session.History()) != 0 {
		t.Error("history not empty after Clear()")
	}
	if session.ID() != id {
		t.Error("session id changed after Clear()")
	}
}

func TestSessionIDsUnique(t *testing.T) {
	t.Parallel()

	if NewSession().ID() == NewSession().ID() {
		t.Error("two sessions share an id")
	}
}
