package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"quote-workflow/internal/usecase/notification"

	gomail "github.com/wneessen/go-mail"
)

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage(notification.Email{
		From:     "quotes@acme.io",
		FromName: "Acme Quotes",
		To:       []string{"f1@acme.io", "f2@acme.io"},
		Subject:  "Quote Q1 requires finance review",
		HTML:     "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}
	rcpts, err := m.GetRecipients()
	if err != nil {
		t.Fatalf("GetRecipients: %v", err)
	}
	if !reflect.DeepEqual(rcpts, []string{"f1@acme.io", "f2@acme.io"}) {
		t.Fatalf("recipients = %v", rcpts)
	}
	if got := m.GetGenHeader(gomail.HeaderSubject); len(got) != 1 || got[0] != "Quote Q1 requires finance review" {
		t.Fatalf("subject = %v", got)
	}
}

func TestBuildMessage_BadAddress(t *testing.T) {
	if _, err := buildMessage(notification.Email{From: "not an address", To: []string{"a@x.io"}}); err == nil {
		t.Fatalf("want error for bad sender")
	}
	if _, err := buildMessage(notification.Email{From: "q@x.io", To: []string{"@@"}}); err == nil {
		t.Fatalf("want error for bad recipient")
	}
}

func TestResend_Send(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	p := NewResend("re_test")
	base, _ := url.Parse(srv.URL + "/")
	p.client.BaseURL = base

	err := p.Send(context.Background(), notification.Email{
		From: "quotes@acme.io", FromName: "Acme", To: []string{"a@x.io"}, Subject: "s", HTML: "<b>b</b>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer re_test" {
		t.Fatalf("authorization = %q", auth)
	}
	if got["from"] != "Acme <quotes@acme.io>" || got["subject"] != "s" || got["html"] != "<b>b</b>" {
		t.Fatalf("payload = %v", got)
	}
}

func TestResend_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad from"}`))
	}))
	defer srv.Close()

	p := NewResend("re_test")
	base, _ := url.Parse(srv.URL + "/")
	p.client.BaseURL = base

	if err := p.Send(context.Background(), notification.Email{From: "q@x.io", To: []string{"a@x.io"}}); err == nil {
		t.Fatalf("want error")
	}
}

func TestFormatAddress(t *testing.T) {
	if got := formatAddress("", "a@x.io"); got != "a@x.io" {
		t.Fatalf("got %q", got)
	}
	if got := formatAddress("Acme", "a@x.io"); got != "Acme <a@x.io>" {
		t.Fatalf("got %q", got)
	}
}
