package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRunActionHasDeadline(t *testing.T) {
	m := newModel("seed apply", time.Second, func(ctx context.Context) ([]string, error) {
		if _, ok := ctx.Deadline(); !ok {
			return nil, errors.New("missing deadline")
		}
		return []string{"created_roles=4"}, nil
	})
	defer m.cancel()

	msg, ok := m.runAction().(actionMsg)
	if !ok {
		t.Fatal("expected action message")
	}
	if msg.err != nil || len(msg.details) != 1 {
		t.Fatalf("unexpected action result: %+v", msg)
	}
}

func TestModelUpdateAndView(t *testing.T) {
	m := newModel("migrate status", time.Second, nil)
	defer m.cancel()
	if !strings.Contains(m.View(), "Running") {
		t.Fatalf("expected running view, got %q", m.View())
	}

	ticked, cmd := m.Update(tickMsg(m.started.Add(1500 * time.Millisecond)))
	if cmd == nil || !strings.Contains(ticked.(model).View(), "1.5s") {
		t.Fatalf("expected elapsed time while running, got %q", ticked.(model).View())
	}

	next, cmd := m.Update(actionMsg{details: []string{"users: present"}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	view := next.(model).View()
	if !strings.Contains(view, "OK") || !strings.Contains(view, "- users: present") {
		t.Fatalf("unexpected success view: %q", view)
	}
	if _, cmd := next.Update(tickMsg(time.Now())); cmd != nil {
		t.Fatal("ticks must stop once the action is done")
	}

	failed, _ := m.Update(actionMsg{err: errors.New("db down")})
	if !strings.Contains(failed.(model).View(), "FAILED: db down") {
		t.Fatalf("unexpected failure view: %q", failed.(model).View())
	}
}

func TestCtrlCCancelsActionContext(t *testing.T) {
	m := newModel("loadgen run", time.Minute, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !errors.Is(next.(model).err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", next.(model).err)
	}
	if !errors.Is(m.ctx.Err(), context.Canceled) {
		t.Fatalf("expected action context canceled, got %v", m.ctx.Err())
	}
}
