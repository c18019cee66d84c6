package ledger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"serotonyl.ru/member-ledger/internal/features/ledger"
	"serotonyl.ru/member-ledger/internal/features/ledger/inmem"
)

func newHandler(out *bytes.Buffer) *ledger.Handler {
	svc := ledger.NewService(inmem.New(), decimal.Zero, "user_")
	return ledger.NewHandler(svc, out)
}

func TestHandleBalanceRejectsBadUserID(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	h.HandleBalance(context.Background(), "abc")

	if !strings.Contains(out.String(), "ID пользователя") {
		t.Errorf("output = %q, want validation message", out.String())
	}
}

func TestHandleRechargeRejectsBadAmount(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	h.HandleRecharge(context.Background(), "1001", "пятьдесят")

	if !strings.Contains(out.String(), "не является числом") {
		t.Errorf("output = %q, want validation message", out.String())
	}
}

func TestHandleRechargeRejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	h := newHandler(&out)

	h.HandleRegister(ctx, "1001", "")
	out.Reset()

	h.HandleRecharge(ctx, "1001", "-5")

	if !strings.Contains(out.String(), "положительной") {
		t.Errorf("output = %q, want positive-amount message", out.String())
	}
}

func TestHandleBalanceUnknownUser(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(&out)

	h.HandleBalance(context.Background(), "9999")

	if !strings.Contains(out.String(), "участник не найден") {
		t.Errorf("output = %q, want not-found message", out.String())
	}
}

func TestHandleRegisterRechargeBalanceFlow(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	h := newHandler(&out)

	h.HandleRegister(ctx, "1001", "alice")
	if !strings.Contains(out.String(), "✅ Участник 1001 зарегистрирован") {
		t.Fatalf("register output = %q", out.String())
	}

	out.Reset()
	h.HandleRecharge(ctx, "1001", "50")
	if !strings.Contains(out.String(), "Новый баланс: 50 юаней") {
		t.Fatalf("recharge output = %q", out.String())
	}

	out.Reset()
	h.HandleBalance(ctx, "1001")
	if !strings.Contains(out.String(), "💰 Баланс: 50 юаней") {
		t.Fatalf("balance output = %q", out.String())
	}

	out.Reset()
	h.HandleDepositHistory(ctx, "1001")
	got := out.String()
	if !strings.Contains(got, "пополнение 50 юаней") {
		t.Fatalf("history output = %q", got)
	}

	out.Reset()
	h.HandleSpendHistory(ctx, "1001")
	if !strings.Contains(out.String(), "не найдено") {
		t.Fatalf("spend history output = %q", out.String())
	}
}

func TestHandleRegisterDuplicateReportsReason(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	h := newHandler(&out)

	h.HandleRegister(ctx, "1002", "bob")
	out.Reset()

	h.HandleRegister(ctx, "1002", "bob2")
	if !strings.Contains(out.String(), "уже существует") {
		t.Errorf("duplicate id output = %q", out.String())
	}

	out.Reset()
	h.HandleRegister(ctx, "1003", "bob")
	if !strings.Contains(out.String(), "уже занято") {
		t.Errorf("duplicate username output = %q", out.String())
	}
}
