package mail

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"
)

func TestMessageValidate(t *testing.T) {
	if err := (Message{To: "a@example.com"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, to := range []string{"", "not-an-address"} {
		if err := (Message{To: to}).Validate(); err == nil {
			t.Fatalf("expected %q to be rejected", to)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"smtp", Config{Backend: BackendSMTP, SMTPHost: "h", SMTPPort: "25", From: "a@example.com"}, true},
		{"smtp bad from", Config{Backend: BackendSMTP, SMTPHost: "h", SMTPPort: "25", From: "nope"}, false},
		{"smtp no host", Config{Backend: BackendSMTP, SMTPPort: "25", From: "a@example.com"}, false},
		{"firestore", Config{Backend: BackendFirestore, Collection: "mail"}, true},
		{"firestore no collection", Config{Backend: BackendFirestore}, false},
		{"unknown", Config{Backend: "pigeon"}, false},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); (err == nil) != tc.ok {
			t.Fatalf("%s: unexpected result %v", tc.name, err)
		}
	}
}

func TestComposeNormalizesLineEndings(t *testing.T) {
	m := NewSMTPMailer(Config{From: "no-reply@example.com"})
	raw := string(m.compose(Message{To: "a@example.com", Subject: "Hi", Text: "line1\nline2"}, time.Unix(0, 0)))

	if !strings.Contains(raw, "Subject: Hi\r\n") {
		t.Fatalf("missing subject header in %q", raw)
	}
	if !strings.HasSuffix(raw, "\r\n\r\nline1\r\nline2\r\n") {
		t.Fatalf("unexpected body in %q", raw)
	}
}

// fakeSMTP accepts one session and returns the DATA payload on the channel.
func fakeSMTP(t *testing.T) (string, string, <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		tp := textproto.NewConn(conn)
		_ = tp.PrintfLine("220 fake ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			switch cmd := strings.ToUpper(line); {
			case strings.HasPrefix(cmd, "EHLO"):
				_ = tp.PrintfLine("250-fake")
				_ = tp.PrintfLine("250 8BITMIME")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				_ = tp.PrintfLine("250 OK")
			case cmd == "DATA":
				_ = tp.PrintfLine("354 go ahead")
				lines, _ := tp.ReadDotLines()
				received <- strings.Join(lines, "\n")
				_ = tp.PrintfLine("250 queued")
			case cmd == "QUIT":
				_ = tp.PrintfLine("221 bye")
				return
			default:
				_ = tp.PrintfLine("502 unsupported")
			}
		}
	}()

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	return host, port, received
}

func TestSMTPMailerSend(t *testing.T) {
	host, port, received := fakeSMTP(t)
	m := NewSMTPMailer(Config{SMTPHost: host, SMTPPort: port, From: "no-reply@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := m.Send(ctx, Message{To: "jane@example.com", Subject: "Reset", Text: "new password: abc"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case data := <-received:
		if !strings.Contains(data, "To: jane@example.com") || !strings.Contains(data, "new password: abc") {
			t.Fatalf("unexpected message %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive message")
	}
}

func TestSMTPMailerRejectsInvalidRecipient(t *testing.T) {
	m := NewSMTPMailer(Config{SMTPHost: "127.0.0.1", SMTPPort: "1", From: "a@example.com"})
	if err := m.Send(context.Background(), Message{To: "bad"}); err == nil {
		t.Fatal("expected validation error before dialing")
	}
}

func TestMockMailer(t *testing.T) {
	m := &MockMailer{}
	if err := m.Send(context.Background(), Message{To: "a@example.com", Text: "x"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(m.Sent()) != 1 {
		t.Fatal("expected recorded message")
	}
	m.Err = errors.New("down")
	if err := m.Send(context.Background(), Message{To: "a@example.com"}); err == nil {
		t.Fatal("expected configured error")
	}
	if len(m.Sent()) != 1 {
		t.Fatal("failed send should not be recorded")
	}
}
