package shell

import (
	"fmt"
	"time"
)

// appendLater schedules a record to join the most recent transcript entry
// after delay. Delays chain: each is measured from the previous step's
// completion, and the scheduler's single worker keeps appends in order.
func (d *Dispatcher) appendLater(delay time.Duration, r Record) {
	d.sched.Schedule(delay, func() {
		d.transcript.AppendToLast(r)
	})
}

// startDecoyWipe plays the destructive-delete prank. The tree is never
// touched; the chain fakes a recursive removal and then owns up.
func (d *Dispatcher) startDecoyWipe(target string) []Record {
	victims := []string{
		"about/bio.txt",
		"about/interests.txt",
		"skills/languages.txt",
		"skills/tools.txt",
		"projects/termfolio.txt",
		"projects/syncd.txt",
		"contact/email.txt",
	}

	for i, v := range victims {
		pct := (i + 1) * 100 / (len(victims) + 1)
		d.appendLater(350*time.Millisecond,
			warningf("removed '%s' [%d%%]", v, pct))
	}
	d.appendLater(500*time.Millisecond, warningf("removed directory '%s' [99%%]", target))
	d.appendLater(900*time.Millisecond, errorf("rm: critical: filesystem integrity lost"))
	d.appendLater(1400*time.Millisecond, notef("...just kidding. Nothing was deleted."))
	d.appendLater(400*time.Millisecond, notef("This portfolio is read-only. Try 'ls' if you don't believe it."))

	return []Record{warningf("rm: descending into '%s'", target)}
}

// startWorkspaceProvision plays the one-time unlock choreography. The gate
// itself flipped before this runs, so the new entries are already
// resolvable; the chain is presentation only.
func (d *Dispatcher) startWorkspaceProvision() []Record {
	steps := []string{
		"mounting ~/lab",
		"mounting ~/admin",
		"registering workspace services",
	}
	for _, s := range steps {
		d.appendLater(450*time.Millisecond, infof("%s ... done", s))
	}
	d.appendLater(600*time.Millisecond,
		successf("workspace provisioned. New entries are visible; try 'ls'."))

	return []Record{infof("provisioning developer workspace ...")}
}

// startDeploy plays a fake release pipeline.
func (d *Dispatcher) startDeploy() []Record {
	stages := []string{
		"resolving build graph",
		"compiling release artifact",
		"running smoke checks",
		"uploading artifact",
	}
	for i, s := range stages {
		pct := (i + 1) * 100 / (len(stages) + 1)
		d.appendLater(550*time.Millisecond,
			infof("[%2d%%] %s", pct, s))
	}
	d.appendLater(700*time.Millisecond,
		successf("deploy complete: %s", fmt.Sprintf("release-%s", time.Now().Format("20060102"))))

	return []Record{infof("starting deploy pipeline ...")}
}
