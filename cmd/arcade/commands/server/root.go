// Package server holds the command serving the arcade HTTP api.
package server

import (
	"context"
	"net"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/retrogamehub/arcade/api"
	"github.com/retrogamehub/arcade/cmd/arcade/backend"
	"github.com/retrogamehub/arcade/contact"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// Backend is set by the root command to the shared backend flags.
var Backend = &backend.Options{Backend: backend.Local}

var (
	apiListen    = ":3005"
	accessKey    = ""
	promEnable   = true
	promListen   = ":9000"
	smtpAddr     = ""
	smtpFrom     = "arcade@localhost"
	smtpUser     = ""
	smtpPassword = os.Getenv("ARCADE_SMTP_PASSWORD")
	mailTo       = ""
)

func init() {
	RootCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	RootCmd.Flags().StringVar(&accessKey, "access-key", accessKey, "key required in "+api.AccessKeyHeader+" on scoreboard writes")
	RootCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	RootCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	RootCmd.Flags().StringVar(&smtpAddr, "smtp-addr", smtpAddr, "smtp server host:port, contact messages are only logged when empty")
	RootCmd.Flags().StringVar(&smtpFrom, "smtp-from", smtpFrom, "envelope sender of contact messages")
	RootCmd.Flags().StringVar(&smtpUser, "smtp-user", smtpUser, "smtp user, the password is read from ARCADE_SMTP_PASSWORD")
	RootCmd.Flags().StringVar(&mailTo, "mail-to", mailTo, "recipient of contact messages, the contact form is disabled when empty")
}

// RootCmd runs the api server.
var RootCmd = &cobra.Command{
	Use:    "server",
	Short:  "serves the contact form and shared scoreboards",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		stores, err := backend.Open(*Backend)
		if err != nil {
			log.WithError(err).WithField("backend", Backend.Backend).Fatal("unable to start up backend store")
		}
		defer stores.Close()

		opts := api.Options{
			Addr:   apiListen,
			APIKey: accessKey,
			Boards: stores.RawBoard,
		}
		if mailTo != "" {
			opts.Sender, opts.MailTo = sender(), mailTo
		}

		srv := api.New(opts)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("unclean shutdown")
			}
		}()

		log.WithFields(log.Fields{
			"listen":  apiListen,
			"backend": Backend.Backend,
			"contact": opts.Sender != nil,
		}).Info("arcade api serving")
		if err := srv.WaitForExit(); err != nil {
			log.WithError(err).WithField("listen", apiListen).Fatal("api server failed")
		}
	},
}

func sender() contact.Sender {
	if smtpAddr == "" {
		log.Warn("no smtp server configured, contact messages will only be logged")
		return contact.LogSender{}
	}
	s := &contact.SMTPSender{Addr: smtpAddr, From: smtpFrom}
	if smtpUser != "" {
		host, _, err := net.SplitHostPort(smtpAddr)
		if err != nil {
			log.WithError(err).WithField("addr", smtpAddr).Fatal("invalid smtp address")
		}
		s.Auth = smtp.PlainAuth("", smtpUser, smtpPassword, host)
	}
	return s
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
