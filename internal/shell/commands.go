package shell

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/termfolio/termfolio/internal/perm"
	"github.com/termfolio/termfolio/internal/vfs"
)

// can runs a permission check with the session's current identity.
func (d *Dispatcher) can(n *vfs.Node, a perm.Access) bool {
	return perm.Check(n, d.sess.Identity(), a)
}

func (d *Dispatcher) cmdLs(args []string) []Record {
	flags, operands := splitFlags(args)
	if bad := badFlag(flags, "al"); bad != 0 {
		return []Record{errorf("ls: invalid option -- '%c'", bad)}
	}
	all := strings.Contains(flags, "a")
	long := strings.Contains(flags, "l")

	if len(operands) == 0 {
		operands = []string{""}
	}

	var records []Record
	for _, op := range operands {
		node, _, err := d.resolve(op)
		if err != nil {
			records = append(records, errorf("ls: cannot access '%s': No such file or directory", op))
			continue
		}
		if !node.IsDir() {
			records = append(records, listRecord([]*vfs.Node{node}, []string{node.Name}, long))
			continue
		}
		if !d.can(node, perm.Read) {
			records = append(records, errorf("ls: cannot open directory '%s': Permission denied", displayOperand(op)))
			continue
		}
		if len(operands) > 1 {
			records = append(records, infof("%s:", displayOperand(op)))
		}
		names := node.ChildNames(all, d.hidden())
		children := make([]*vfs.Node, len(names))
		for i, name := range names {
			children[i] = node.Children[name]
		}
		records = append(records, listRecord(children, names, long))
	}
	return records
}

func displayOperand(op string) string {
	if op == "" {
		return "."
	}
	return op
}

// listRecord renders a listing both as display text and as structured
// entries. Short form joins names on one line with a trailing slash on
// directories; long form is one row per entry.
func listRecord(nodes []*vfs.Node, names []string, long bool) Record {
	entries := make([]ListEntry, len(nodes))
	var lines []string
	var short []string
	for i, n := range nodes {
		entries[i] = ListEntry{
			Name:    names[i],
			Dir:     n.IsDir(),
			Perms:   string(n.Perms),
			Owner:   n.Owner,
			Group:   n.Group,
			ModTime: n.ModTime,
		}
		if long {
			kind := "-"
			if n.IsDir() {
				kind = "d"
			}
			lines = append(lines, fmt.Sprintf("%s%s %-8s %-8s %s %s",
				kind, n.Perms, n.Owner, n.Group,
				n.ModTime.Format("Jan _2 15:04"), names[i]))
		} else {
			name := names[i]
			if n.IsDir() {
				name += "/"
			}
			short = append(short, name)
		}
	}
	text := strings.Join(short, "  ")
	if long {
		text = strings.Join(lines, "\n")
	}
	return Record{Kind: KindSuccess, Text: text, Listing: entries}
}

func (d *Dispatcher) cmdCd(args []string) []Record {
	flags, operands := splitFlags(args)
	if flags != "" {
		return []Record{errorf("cd: invalid option -- '%c'", flags[0])}
	}
	if len(operands) > 1 {
		return []Record{errorf("cd: too many arguments")}
	}

	target := vfs.RootName
	if len(operands) == 1 {
		target = operands[0]
	}

	if target == "-" {
		path, ok := d.sess.SwapCwd()
		if !ok {
			return []Record{errorf("cd: OLDPWD not set")}
		}
		return []Record{infof("%s", path)}
	}

	node, path, err := d.resolve(target)
	if err != nil {
		return []Record{errorf("cd: %s: No such file or directory", target)}
	}
	if !node.IsDir() {
		return []Record{errorf("cd: %s: Not a directory", target)}
	}
	if !d.can(node, perm.Exec) {
		return []Record{errorf("cd: %s: Permission denied", target)}
	}
	d.sess.SetCwd(path)
	return nil
}

func (d *Dispatcher) cmdCat(args []string) []Record {
	flags, operands := splitFlags(args)
	if flags != "" {
		return []Record{errorf("cat: invalid option -- '%c'", flags[0])}
	}
	if len(operands) == 0 {
		return []Record{errorf("cat: missing operand")}
	}

	var records []Record
	for _, op := range operands {
		node, _, err := d.resolve(op)
		if err != nil {
			records = append(records, errorf("cat: %s: No such file or directory", op))
			continue
		}
		if node.IsDir() {
			records = append(records, errorf("cat: %s: Is a directory", op))
			continue
		}
		if !d.can(node, perm.Read) {
			records = append(records, errorf("cat: %s: Permission denied", op))
			continue
		}
		records = append(records, successf("%s", strings.Join(node.Content(d.sess.Locale()), "\n")))
	}
	return records
}

func (d *Dispatcher) cmdPwd(args []string) []Record {
	return []Record{successf("%s", d.sess.Cwd())}
}

func (d *Dispatcher) cmdWhoami(args []string) []Record {
	return []Record{successf("%s", d.sess.Actor())}
}

func (d *Dispatcher) cmdID(args []string) []Record {
	if d.sess.Privileged() {
		return []Record{successf("uid=0(root) gid=0(root) groups=0(root)")}
	}
	actor := d.sess.Actor()
	groups := d.sess.Groups()
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%d(%s)", 1000+i, g)
	}
	primary := fmt.Sprintf("1000(%s)", actor)
	if len(parts) > 0 {
		primary = parts[0]
	}
	return []Record{successf("uid=1000(%s) gid=%s groups=%s",
		actor, primary, strings.Join(parts, ","))}
}

func (d *Dispatcher) cmdDate(args []string) []Record {
	return []Record{successf("%s", time.Now().Format(time.UnixDate))}
}

func (d *Dispatcher) cmdUname(args []string) []Record {
	flags, _ := splitFlags(args)
	if bad := badFlag(flags, "a"); bad != 0 {
		return []Record{errorf("uname: invalid option -- '%c'", bad)}
	}
	if strings.Contains(flags, "a") {
		return []Record{successf("Linux %s 6.1.0-folio #1 SMP x86_64 GNU/Linux", d.sess.Host())}
	}
	return []Record{successf("Linux")}
}

func (d *Dispatcher) cmdEcho(args []string) []Record {
	return []Record{successf("%s", strings.Join(args, " "))}
}

func (d *Dispatcher) cmdHistory(args []string) []Record {
	entries := d.sess.History()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%5d  %s", i+1, e)
	}
	return []Record{successf("%s", strings.Join(lines, "\n"))}
}

func (d *Dispatcher) cmdLang(args []string) []Record {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return []Record{infof("current locale: %s (available: en, zh)", d.sess.Locale())}
	}
	loc, err := vfs.ParseLocale(operands[0])
	if err != nil {
		return []Record{errorf("lang: unsupported locale: %s", operands[0])}
	}
	d.sess.SetLocale(loc)
	return []Record{infof("locale switched to %s", loc)}
}

func (d *Dispatcher) cmdSudo(args []string) []Record {
	if len(args) == 0 {
		return []Record{errorf("usage: sudo <command> [args...]")}
	}
	line := strings.Join(args, " ")
	if d.sess.Privileged() {
		// Already elevated; no challenge, run directly.
		return d.dispatch(line)
	}
	d.sess.BeginChallenge(line)
	return []Record{notef("[sudo] password for %s:", d.sess.Actor())}
}

func (d *Dispatcher) cmdTouch(args []string) []Record {
	flags, operands := splitFlags(args)
	if flags != "" {
		return []Record{errorf("touch: invalid option -- '%c'", flags[0])}
	}
	if len(operands) == 0 {
		return []Record{errorf("touch: missing file operand")}
	}

	var records []Record
	for _, op := range operands {
		if node, _, err := d.resolve(op); err == nil {
			// Existing target: a timestamp update needs write access.
			if !d.can(node, perm.Write) {
				records = append(records, errorf("touch: cannot touch '%s': Permission denied", op))
			}
			continue
		}
		parentExpr, name := vfs.SplitTarget(op)
		parent, _, err := d.resolve(parentExpr)
		if err != nil || !parent.IsDir() || name == "" {
			records = append(records, errorf("touch: cannot touch '%s': No such file or directory", op))
			continue
		}
		if !d.can(parent, perm.Write) {
			records = append(records, errorf("touch: cannot touch '%s': Permission denied", op))
		}
	}
	return records
}

func (d *Dispatcher) cmdMkdir(args []string) []Record {
	flags, operands := splitFlags(args)
	if flags != "" {
		return []Record{errorf("mkdir: invalid option -- '%c'", flags[0])}
	}
	if len(operands) == 0 {
		return []Record{errorf("mkdir: missing operand")}
	}

	var records []Record
	for _, op := range operands {
		if _, _, err := d.resolve(op); err == nil {
			records = append(records, errorf("mkdir: cannot create directory '%s': File exists", op))
			continue
		}
		parentExpr, name := vfs.SplitTarget(op)
		parent, _, err := d.resolve(parentExpr)
		if err != nil || !parent.IsDir() || name == "" {
			records = append(records, errorf("mkdir: cannot create directory '%s': No such file or directory", op))
			continue
		}
		if !d.can(parent, perm.Write) {
			records = append(records, errorf("mkdir: cannot create directory '%s': Permission denied", op))
		}
	}
	return records
}

var octalMode = regexp.MustCompile(`^[0-7]{3,4}$`)

func (d *Dispatcher) cmdChmod(args []string) []Record {
	flags, operands := splitFlags(args)
	if flags != "" {
		return []Record{errorf("chmod: invalid option -- '%c'", flags[0])}
	}
	if len(operands) < 2 {
		return []Record{errorf("chmod: missing operand")}
	}
	mode := operands[0]
	if !octalMode.MatchString(mode) {
		return []Record{errorf("chmod: invalid mode: '%s'", mode)}
	}

	var records []Record
	for _, op := range operands[1:] {
		node, _, err := d.resolve(op)
		if err != nil {
			records = append(records, errorf("chmod: cannot access '%s': No such file or directory", op))
			continue
		}
		// Only the owner or an elevated actor may change modes.
		if !d.sess.Privileged() && d.sess.Actor() != node.Owner {
			records = append(records, errorf("chmod: changing permissions of '%s': Operation not permitted", op))
		}
	}
	return records
}

func (d *Dispatcher) cmdChown(args []string) []Record {
	flags, operands := splitFlags(args)
	if flags != "" {
		return []Record{errorf("chown: invalid option -- '%c'", flags[0])}
	}
	if len(operands) < 2 {
		return []Record{errorf("chown: missing operand")}
	}
	spec := operands[0]
	if spec == "" || strings.Count(spec, ":") > 1 {
		return []Record{errorf("chown: invalid spec: '%s'", spec)}
	}

	var records []Record
	for _, op := range operands[1:] {
		if _, _, err := d.resolve(op); err != nil {
			records = append(records, errorf("chown: cannot access '%s': No such file or directory", op))
			continue
		}
		if !d.sess.Privileged() {
			records = append(records, errorf("chown: changing ownership of '%s': Operation not permitted", op))
		}
	}
	return records
}

func (d *Dispatcher) cmdRm(args []string) []Record {
	flags, operands := splitFlags(args)
	if bad := badFlag(flags, "rf"); bad != 0 {
		return []Record{errorf("rm: invalid option -- '%c'", bad)}
	}
	recursive := strings.Contains(flags, "r")
	force := strings.Contains(flags, "f")

	if len(operands) == 0 {
		if force {
			return nil
		}
		return []Record{errorf("rm: missing operand")}
	}

	if recursive && force {
		return d.startDecoyWipe(operands[0])
	}

	var records []Record
	for _, op := range operands {
		node, path, err := d.resolve(op)
		if err != nil {
			if !force {
				records = append(records, errorf("rm: cannot remove '%s': No such file or directory", op))
			}
			continue
		}
		if node.IsDir() && !recursive {
			records = append(records, errorf("rm: cannot remove '%s': Is a directory", op))
			continue
		}
		parent, _, perr := d.resolve(vfs.Parent(path))
		if perr != nil || !d.can(parent, perm.Write) {
			records = append(records, errorf("rm: cannot remove '%s': Permission denied", op))
		}
	}
	return records
}

func (d *Dispatcher) cmdUnlock(args []string) []Record {
	if !d.sess.Unlock() {
		return []Record{infof("workspace already provisioned")}
	}
	return d.startWorkspaceProvision()
}

func (d *Dispatcher) cmdDeploy(args []string) []Record {
	return d.startDeploy()
}

func (d *Dispatcher) cmdHelp(args []string) []Record {
	lines := []string{
		"available commands:",
		"  ls [-a] [-l] [path]   list directory contents",
		"  cd [path|-]           change directory",
		"  cat <file>...         print file contents",
		"  pwd                   print working directory",
		"  whoami, id            show identity",
		"  date, uname [-a]      system information",
		"  echo <text>           print text",
		"  man <command>         show a manual page",
		"  history               show command history",
		"  lang [en|zh]          show or switch content language",
		"  sudo <command>        run a command with elevated privilege",
		"  touch, mkdir, chmod, chown, rm",
		"  unlock                provision the developer workspace",
		"  help, clear, exit",
	}
	return []Record{infof("%s", strings.Join(lines, "\n"))}
}

func (d *Dispatcher) cmdClear(args []string) []Record {
	d.transcript.Clear()
	return []Record{{Kind: KindSystemNote, ClearScreen: true}}
}

func (d *Dispatcher) cmdExit(args []string) []Record {
	return []Record{{Kind: KindSystemNote, Text: "logout", EndSession: true}}
}
