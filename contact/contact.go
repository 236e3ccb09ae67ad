// Package contact relays the site's contact form to a mailbox.
package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Subject of every relayed message.
const Subject = "New message from Retro Game Hub Contact Form"

// Response messages.
const (
	MsgSent          = "Thank you for contacting us!"
	MsgFailed        = "Sorry, something went wrong. Please try again."
	MsgMethodInvalid = "Method not allowed."
)

const maxFormMemory = 1 << 20

var (
	messagesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arcade",
			Subsystem: "contact",
			Name:      "messages_total",
			Help:      "Contact form messages by result.",
		},
		[]string{"result"},
	)
)

func init() { prometheus.MustRegister(messagesCounter) }

// Message is a mail ready to send.
type Message struct {
	To      string
	Subject string
	// ReplyTo is the sender's sanitized address, used for the From and
	// Reply-To headers when set.
	ReplyTo string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Response is the JSON envelope returned to the form.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Form is a submitted contact form after cleaning.
type Form struct {
	Name    string
	Email   string
	Message string
}

// Clean strips tags from the free text fields and sanitizes the address.
func Clean(name, email, message string) Form {
	return Form{
		Name:    StripTags(name),
		Email:   SanitizeEmail(email),
		Message: StripTags(message),
	}
}

// MessageFor builds the mail relayed for f.
func MessageFor(to string, f Form) Message {
	return Message{
		To:      to,
		Subject: Subject,
		ReplyTo: f.Email,
		Body:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", f.Name, f.Email, f.Message),
	}
}

// Handler accepts POSTed forms, url encoded or multipart, and relays them to
// the to address.
func Handler(sender Sender, to string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeResponse(w, http.StatusMethodNotAllowed, Response{Message: MsgMethodInvalid})
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
			log.WithError(err).Warn("unable to parse contact form")
		}
		f := Clean(r.FormValue("name"), r.FormValue("email"), r.FormValue("message"))

		if err := sender.Send(r.Context(), MessageFor(to, f)); err != nil {
			messagesCounter.WithLabelValues("failed").Inc()
			log.WithError(err).WithField("email", f.Email).Error("unable to relay contact message")
			writeResponse(w, http.StatusInternalServerError, Response{Message: MsgFailed})
			return
		}

		messagesCounter.WithLabelValues("sent").Inc()
		log.WithField("email", f.Email).Info("contact message relayed")
		writeResponse(w, http.StatusOK, Response{Success: true, Message: MsgSent})
	})
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Warn("unable to write contact response")
	}
}

// LogSender logs messages instead of sending them.
type LogSender struct{}

// Send logs m.
func (LogSender) Send(ctx context.Context, m Message) error {
	log.WithFields(log.Fields{
		"to":       m.To,
		"reply_to": m.ReplyTo,
		"subject":  m.Subject,
	}).Info(strings.Replace(m.Body, "\n", " | ", -1))
	return nil
}
