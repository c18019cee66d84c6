package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// recorder фиксирует, какие действия и с какими аргументами были вызваны.
type recorder struct {
	calls []string
}

func (r *recorder) HandleBalance(_ context.Context, userID string) {
	r.calls = append(r.calls, "balance:"+userID)
}
func (r *recorder) HandleRecharge(_ context.Context, userID, amount string) {
	r.calls = append(r.calls, "recharge:"+userID+":"+amount)
}
func (r *recorder) HandleSpend(_ context.Context, userID, amount string) {
	r.calls = append(r.calls, "spend:"+userID+":"+amount)
}
func (r *recorder) HandleRegister(_ context.Context, userID, username string) {
	r.calls = append(r.calls, "register:"+userID+":"+username)
}
func (r *recorder) HandleDepositHistory(_ context.Context, userID string) {
	r.calls = append(r.calls, "deposits:"+userID)
}
func (r *recorder) HandleSpendHistory(_ context.Context, userID string) {
	r.calls = append(r.calls, "spends:"+userID)
}

func TestRunDispatchesActions(t *testing.T) {
	input := strings.Join([]string{
		"1", "1001", // баланс
		"2", "1001", "50", // пополнение
		"4", "1002", "alice", // регистрация
		"5", "1001", // история пополнений
		"0", // выход
	}, "\n") + "\n"

	var out bytes.Buffer
	rec := &recorder{}
	c := New(strings.NewReader(input), &out, rec)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"balance:1001",
		"recharge:1001:50",
		"register:1002:alice",
		"deposits:1001",
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, rec.calls[i], want[i])
		}
	}

	if !strings.Contains(out.String(), "Система управления участниками") {
		t.Errorf("menu not printed")
	}
}

func TestRunStopsOnEOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("1\n"), &out, &recorder{})

	// Ввод закончился посреди сценария — без зависания и без ошибки
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunUnknownChoice(t *testing.T) {
	var out bytes.Buffer
	rec := &recorder{}
	c := New(strings.NewReader("9\n0\n"), &out, rec)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.calls)
	}
	if !strings.Contains(out.String(), "Неизвестное действие") {
		t.Errorf("missing unknown-action message")
	}
}
