package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockSender struct {
	sent []Message
	err  error
}

func (m *mockSender) Send(ctx context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func post(t *testing.T, h http.Handler, form url.Values) (*httptest.ResponseRecorder, Response) {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandlerRelays(t *testing.T) {
	sender := &mockSender{}
	h := Handler(sender, "owner@example.com")

	rec, resp := post(t, h, url.Values{
		"name":    {"<b>Ada</b>"},
		"email":   {"ada (at) <example>.com\r\nBcc: x@y"},
		"message": {"Hi <script>there</script> &amp; bye"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, Response{Success: true, Message: MsgSent}, resp)

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	require.Equal(t, "owner@example.com", m.To)
	require.Equal(t, Subject, m.Subject)
	require.Equal(t, "adaatexample.comBccx@y", m.ReplyTo)
	require.Equal(t, "Name: Ada\nEmail: adaatexample.comBccx@y\n\nMessage:\nHi there &amp; bye", m.Body)
}

func TestHandlerSendFailure(t *testing.T) {
	h := Handler(&mockSender{err: errors.New("mail down")}, "owner@example.com")
	rec, resp := post(t, h, url.Values{"name": {"Ada"}})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, Response{Success: false, Message: MsgFailed}, resp)
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	sender := &mockSender{}
	h := Handler(sender, "owner@example.com")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/contact", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"Method not allowed."}`, rec.Body.String())
	}
	require.Empty(t, sender.sent)
}

func TestStripTags(t *testing.T) {
	require.Equal(t, "plain", StripTags("plain"))
	require.Equal(t, "bold and link", StripTags(`<b>bold</b> and <a href="x">link</a>`))
	require.Equal(t, "ab", StripTags("a<!-- hidden -->b"))
	require.Equal(t, "1 &lt; 2", StripTags("1 &lt; 2<br/>"))
}

func TestSanitizeEmail(t *testing.T) {
	require.Equal(t, "ada@example.com", SanitizeEmail("ada@example.com"))
	require.Equal(t, "a.b+tag@ex-ample.org", SanitizeEmail(" a.b+tag@ex-ample.org\r\n"))
	require.Equal(t, "ada@exmple.com", SanitizeEmail("ada@exämple.com"))
}

func TestSMTPSenderFormat(t *testing.T) {
	var gotFrom string
	var gotTo []string
	var gotMsg []byte
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotFrom, gotTo, gotMsg = from, to, msg
		return nil
	}
	defer func() { sendMail = smtp.SendMail }()

	s := &SMTPSender{Addr: "localhost:25", From: "arcade@example.com"}
	m := MessageFor("owner@example.com", Clean("Ada", "ada@example.com", "line1\nline2"))
	require.NoError(t, s.Send(context.Background(), m))

	require.Equal(t, "arcade@example.com", gotFrom)
	require.Equal(t, []string{"owner@example.com"}, gotTo)
	msg := string(gotMsg)
	require.Contains(t, msg, "From: ada@example.com\r\nReply-To: ada@example.com\r\n")
	require.Contains(t, msg, "Subject: "+Subject+"\r\n")
	require.True(t, strings.HasSuffix(msg, "Message:\r\nline1\r\nline2"))

	m.ReplyTo = ""
	require.NoError(t, s.Send(context.Background(), m))
	require.Contains(t, string(gotMsg), "From: arcade@example.com\r\n")
	require.NotContains(t, string(gotMsg), "Reply-To")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Send(ctx, m))
}
