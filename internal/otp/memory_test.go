package otp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wigglew/wigglew_auth/internal/notification"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (n *recordingNotifier) Send(_ context.Context, m notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, m)
	return nil
}

func issuedCode(t *testing.T, p *MemoryProvider, phone string) string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.codes[phone]
	if !ok {
		t.Fatalf("no outstanding code for %s", phone)
	}
	return ch.code
}

func TestMemoryProviderIssueAndCheck(t *testing.T) {
	p := NewMemoryProvider(&recordingNotifier{}, 5*time.Minute, 6)
	ctx := context.Background()

	if err := p.Issue(ctx, "+881700000000"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := issuedCode(t, p, "+881700000000")

	ok, err := p.Check(ctx, "+881700000000", code)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatal("expected matching code to pass")
	}

	// Consumed on success.
	ok, err = p.Check(ctx, "+881700000000", code)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatal("expected consumed code to fail")
	}
}

func TestMemoryProviderMismatchLeavesCode(t *testing.T) {
	p := NewMemoryProvider(&recordingNotifier{}, 5*time.Minute, 6)
	ctx := context.Background()

	if err := p.Issue(ctx, "+881700000000"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := issuedCode(t, p, "+881700000000")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	if ok, _ := p.Check(ctx, "+881700000000", wrong); ok {
		t.Fatal("expected mismatch to fail")
	}
	if ok, _ := p.Check(ctx, "+881700000000", code); !ok {
		t.Fatal("expected code to survive a failed attempt")
	}
}

func TestMemoryProviderReissueOverwrites(t *testing.T) {
	p := NewMemoryProvider(&recordingNotifier{}, 5*time.Minute, 6)
	ctx := context.Background()

	if err := p.Issue(ctx, "+881700000000"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	first := issuedCode(t, p, "+881700000000")
	if err := p.Issue(ctx, "+881700000000"); err != nil {
		t.Fatalf("reissue: %v", err)
	}
	second := issuedCode(t, p, "+881700000000")

	if first != second {
		if ok, _ := p.Check(ctx, "+881700000000", first); ok {
			t.Fatal("expected superseded code to be rejected")
		}
	}
	if ok, _ := p.Check(ctx, "+881700000000", second); !ok {
		t.Fatal("expected latest code to pass")
	}
}

func TestMemoryProviderExpiry(t *testing.T) {
	p := NewMemoryProvider(&recordingNotifier{}, 5*time.Minute, 6)
	ctx := context.Background()

	now := time.Now()
	p.now = func() time.Time { return now }

	if err := p.Issue(ctx, "+881700000000"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := issuedCode(t, p, "+881700000000")

	now = now.Add(5*time.Minute + time.Second)
	if ok, _ := p.Check(ctx, "+881700000000", code); ok {
		t.Fatal("expected expired code to be rejected")
	}
}

func TestGenerateCodeLengthAndCharset(t *testing.T) {
	code, err := GenerateCode(6)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in code %q", r, code)
		}
	}

	if _, err := GenerateCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
