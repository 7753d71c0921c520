// Package cli wires the pipeline behind a single cobra command:
// load config, fetch the spreadsheet, render, then send, print or serve.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reminder/internal/config"
	"reminder/internal/core"
	"reminder/internal/debug"
	"reminder/internal/history"
	"reminder/internal/horoscope"
	applog "reminder/internal/log"
	"reminder/internal/mail"
	"reminder/internal/render"
	"reminder/internal/report"
	"reminder/internal/sheets/google"
)

const defaultHistoryDB = "./data/history.db"

var (
	flagAccount  string
	flagAt       string
	flagConfig   string
	flagBirthday string
	flagAlert    string
	flagTemplate string
	flagLogFile  string
	flagDryRun   bool
	flagDebug    bool
	flagPort     int
)

// NewRootCmd builds the reminder command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reminder",
		Short:         "Send a budget reminder email built from a Google spreadsheet",
		Long: `reminder reads a personal budget spreadsheet, renders its figures into an
HTML email and sends it to the configured recipient. Use --dry-run to print
the email instead, or --debug to preview it in a browser while editing the
template.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVar(&flagAccount, "for", "", "account key to send the reminder for")
	cmd.Flags().StringVar(&flagAt, "at", "", "time label for the reminder, e.g. \"8:00 AM\"")
	cmd.Flags().StringVar(&flagConfig, "using", "", "accounts configuration file")
	cmd.Flags().StringVar(&flagBirthday, "birthday", "", "birthday in YYYY-MM-DD or MM-DD format, adds a horoscope")
	cmd.Flags().StringVar(&flagAlert, "alert", "", "one-off alert text shown at the top of the email")
	cmd.Flags().StringVar(&flagTemplate, "template", "", "HTML template file (default: embedded template)")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "history.log", "log file to append to")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the email to stdout instead of sending")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "serve the email over HTTP and re-render on template changes")
	cmd.Flags().IntVar(&flagPort, "port", 8000, "HTTP port for debug mode")

	cmd.MarkFlagRequired("for")
	cmd.MarkFlagRequired("at")
	cmd.MarkFlagRequired("using")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "debug")

	return cmd
}

// Execute runs the command and exits non-zero on any failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("budget reminder failed", applog.FieldError, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	handler, closer, err := applog.FileHandler(flagLogFile, slog.LevelInfo)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", flagLogFile, err)
	}
	defer closer.Close()
	logger := applog.New(applog.Config{Handler: handler, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	acct, err := cfg.Account(flagAccount)
	if err != nil {
		return err
	}
	logger.Info("account selected",
		applog.FieldAccount, acct.Key,
		applog.FieldRecipient, acct.Recipient.Email)

	reader, err := google.New(ctx, acct.Recipient.SpreadsheetID, acct.Recipient.ServiceAccountFile)
	if err != nil {
		return err
	}

	summary, err := report.NewBuilder(reader, logger).Build(ctx, core.Meta{
		Name:           acct.Recipient.Name,
		SpreadsheetURL: acct.Recipient.SpreadsheetURL(),
	}, flagAt)
	if err != nil {
		return err
	}

	if flagBirthday != "" {
		attachHoroscope(ctx, logger, summary, flagBirthday)
	}
	summary.CustomAlert = flagAlert

	if flagDebug {
		return debug.Run(ctx, debug.Options{
			TemplatePath: flagTemplate,
			Port:         flagPort,
			Logger:       logger,
			Render: func() (string, error) {
				r, err := newRenderer(flagTemplate)
				if err != nil {
					return "", err
				}
				return r.Render(summary.At(time.Now()))
			},
		})
	}

	r, err := newRenderer(flagTemplate)
	if err != nil {
		return err
	}
	now := time.Now()
	html, err := r.Render(summary.At(now))
	if err != nil {
		return err
	}

	return dispatch(ctx, cmd.OutOrStdout(), logger, openJournal(logger), gmailSenderFor(acct),
		flagDryRun, acct, summary, html, now)
}

func newRenderer(templatePath string) (*render.Renderer, error) {
	if templatePath == "" {
		return render.New()
	}
	return render.NewFromFile(templatePath)
}

// attachHoroscope is best-effort: a broken horoscope site must not block the
// budget email.
func attachHoroscope(ctx context.Context, logger *applog.Logger, summary *core.Summary, birthday string) {
	hlog := logger.WithComponent(applog.ComponentHoroscope)
	sign, err := horoscope.SignForBirthday(birthday)
	if err != nil {
		hlog.Warn("skipping horoscope", applog.FieldError, err)
		return
	}
	defer hlog.Timed("fetch horoscope", "sign", string(sign))()
	text, url, err := horoscope.NewClient().Daily(ctx, sign)
	if err != nil {
		hlog.Warn("skipping horoscope", "sign", string(sign), applog.FieldError, err)
		return
	}
	summary.Horoscope = text
	summary.HoroscopeURL = url
}

// recorder is the journal seam; nil-safe via dispatch.
type recorder interface {
	Record(ctx context.Context, d history.Delivery) error
}

func openJournal(logger *applog.Logger) recorder {
	path := os.Getenv("HISTORY_DB_PATH")
	if path == "" {
		path = defaultHistoryDB
	}
	store, err := history.Open(path)
	if err != nil {
		logger.WithComponent(applog.ComponentHistory).
			Warn("history journal disabled", "path", path, applog.FieldError, err)
		return nil
	}
	return store
}

func gmailSenderFor(acct *config.Account) func() mail.Sender {
	return func() mail.Sender {
		return mail.NewGmailSender(acct.FromEmail, acct.AppPassword)
	}
}

// dispatch performs the final step of the pipeline. In dry-run mode the
// sender is never constructed, so no network connection can happen.
func dispatch(
	ctx context.Context,
	out io.Writer,
	logger *applog.Logger,
	journal recorder,
	newSender func() mail.Sender,
	dryRun bool,
	acct *config.Account,
	summary *core.Summary,
	html string,
	now time.Time,
) error {
	subject := summary.Subject(now)

	if dryRun {
		fmt.Fprintln(out, html)
		record(ctx, logger, journal, history.Delivery{
			Account:   acct.Key,
			Recipient: acct.Recipient.Email,
			Subject:   subject,
			Mode:      history.ModeDryRun,
			Status:    history.StatusSent,
		})
		return nil
	}

	msg := mail.Message{
		From:    acct.FromEmail,
		To:      []string{acct.Recipient.Email},
		Bcc:     []string{acct.FromEmail},
		Subject: subject,
		HTML:    html,
	}

	mlog := logger.WithComponent(applog.ComponentMail)
	start := time.Now()
	err := newSender().Send(ctx, msg)
	elapsed := time.Since(start)

	d := history.Delivery{
		Account:   acct.Key,
		Recipient: acct.Recipient.Email,
		Subject:   subject,
		Mode:      history.ModeSend,
		Status:    history.StatusSent,
		Duration:  elapsed,
	}
	if err != nil {
		d.Status = history.StatusFailed
		d.Error = err.Error()
		record(ctx, mlog, journal, d)
		return err
	}
	record(ctx, mlog, journal, d)

	mlog.Info("reminder sent",
		applog.FieldRecipient, acct.Recipient.Email,
		applog.FieldSubject, subject,
		applog.FieldDuration, elapsed.Milliseconds())
	return nil
}

func record(ctx context.Context, logger *applog.Logger, journal recorder, d history.Delivery) {
	if journal == nil {
		return
	}
	if err := journal.Record(ctx, d); err != nil {
		logger.Warn("journal record failed", applog.FieldError, err)
	}
}
