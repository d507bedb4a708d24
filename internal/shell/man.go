package shell

import "strings"

// manPages is the fixed page subset. Pages are deliberately short; this is
// a guided environment, not a full manual corpus.
var manPages = map[string]string{
	"ls": strings.TrimSpace(`
LS(1)

NAME
    ls - list directory contents

SYNOPSIS
    ls [-a] [-l] [path...]

DESCRIPTION
    List the entries of each directory operand, or of the working
    directory when none is given. Directories sort before files.

    -a    include entries whose names begin with a dot
    -l    long format: permissions, owner, group, modification time
`),
	"cd": strings.TrimSpace(`
CD(1)

NAME
    cd - change the working directory

SYNOPSIS
    cd [path]
    cd -

DESCRIPTION
    Change the working directory to path, or to the home directory when
    no operand is given. 'cd -' returns to the previous directory.
`),
	"cat": strings.TrimSpace(`
CAT(1)

NAME
    cat - print file contents

SYNOPSIS
    cat file...

DESCRIPTION
    Print each file operand in order. Content follows the active locale
    (see lang).
`),
	"echo": strings.TrimSpace(`
ECHO(1)

NAME
    echo - print arguments

SYNOPSIS
    echo [text...]

DESCRIPTION
    Print the operands separated by single spaces.
`),
	"sudo": strings.TrimSpace(`
SUDO(8)

NAME
    sudo - execute a command with elevated privilege

SYNOPSIS
    sudo command [args...]

DESCRIPTION
    Prompt for the secret and, once it is accepted, run the requested
    command with privilege. Three rejected attempts cancel the request.
`),
	"lang": strings.TrimSpace(`
LANG(1)

NAME
    lang - show or switch the content language

SYNOPSIS
    lang [en|zh]

DESCRIPTION
    With no operand, print the active locale. With an operand, switch
    file content to that language. Prompt and error text stay English.
`),
}

func (d *Dispatcher) cmdMan(args []string) []Record {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return []Record{errorf("What manual page do you want?")}
	}
	page, ok := manPages[operands[0]]
	if !ok {
		return []Record{errorf("No manual entry for %s", operands[0])}
	}
	return []Record{infof("%s", page)}
}
