// Command termfolio runs the interactive portfolio shell on a terminal.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/termfolio/termfolio/internal/config"
	"github.com/termfolio/termfolio/internal/logging"
	"github.com/termfolio/termfolio/internal/metrics"
	"github.com/termfolio/termfolio/internal/sequencer"
	"github.com/termfolio/termfolio/internal/session"
	"github.com/termfolio/termfolio/internal/shell"
	"github.com/termfolio/termfolio/internal/vfs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termfolio:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: "stderr",
	}); err != nil {
		return err
	}
	defer logging.Sync()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			logging.Info("metrics server listening",
				logging.String("addr", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logging.Error("metrics server stopped", logging.Err(err))
			}
		}()
	}

	tree := vfs.MustNew()
	sess, err := session.New(session.Options{
		Actor:       cfg.Actor,
		Host:        cfg.Host,
		Groups:      []string{"dev"},
		Secret:      cfg.SudoSecret,
		MaxAttempts: cfg.SudoMaxAttempts,
		Locale:      vfs.Locale(cfg.Locale),
	})
	if err != nil {
		return err
	}

	sched := sequencer.New(cfg.DelayScale)
	defer sched.Close()

	d := shell.New(tree, sess, sched)

	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	// Sequenced records stream to the terminal as the scheduler emits them.
	d.Transcript().SetObserver(printRecord)

	printBanner(sess)

	for {
		var line string
		var err error
		if sess.ChallengePending() {
			line, err = rl.PasswordPrompt("")
		} else {
			line, err = rl.Prompt(sess.Prompt() + " ")
		}
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			// Ctrl-C cancels the pending input line, nothing else.
			fmt.Println("^C")
			continue
		case io.EOF:
			fmt.Println()
			return nil
		default:
			return err
		}

		challengeWasPending := sess.ChallengePending()
		records := d.Execute(line)
		if !challengeWasPending && strings.TrimSpace(line) != "" {
			rl.AppendHistory(strings.TrimSpace(line))
		}

		end := false
		for _, r := range records {
			printRecord(r)
			if r.EndSession {
				end = true
			}
		}

		// Block while a scripted chain plays out; the observer prints
		// each appended record on arrival.
		if sched.Pending() > 0 {
			sched.Wait()
		}

		if end {
			sess.Reset()
			d.Transcript().Clear()
			printBanner(sess)
		}
	}
}

func printBanner(sess *session.Session) {
	fmt.Println(shell.Welcome(sess.Locale(), sess.Host()))
}

func printRecord(r shell.Record) {
	if r.ClearScreen {
		fmt.Print("\033[2J\033[H")
		return
	}
	if r.Text == "" {
		return
	}
	switch r.Kind {
	case shell.KindError:
		fmt.Fprintln(os.Stderr, r.Text)
	default:
		fmt.Println(r.Text)
	}
}
