package termui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/essence"
)

var welcomeMessage = "Welcome to %s [V%s]\n"
var stdprompt = prtxt.FgGreen.Sprint("%s> ")
var contprompt = prtxt.FgGreen.Sprint("%s. ")

// BaseREPL is a base type to instantiate a REPL interpreter.
// Concrete REPL implementations will usually use this as a base type.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter // the interpreter this REPL runs for
	Helper      func(io.Writer)        // print out help information
	Continues   func(string) bool      // true if input text awaits another line
	readline    *readline.Instance
	errout      io.Writer
	toolname    string
	version     string
	prompt      string
	editmode    string
}

// NewBaseREPL create a new REPL base object intialized for an interpreter tool
// and a given version.
func NewBaseREPL(toolname, version string) (*BaseREPL, error) {
	repl := newBaseREPL(toolname, version, nil)
	histfile := fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              repl.prompt,
		HistoryFile:         histfile,
		AutoComplete:        replCompleter,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot start REPL: %w", err)
	}
	repl.readline = rl
	repl.errout = rl.Stderr()
	return repl, nil
}

func newBaseREPL(toolname, version string, errout io.Writer) *BaseREPL {
	return &BaseREPL{
		errout:   errout,
		toolname: toolname,
		version:  version,
		prompt:   fmt.Sprintf(stdprompt, toolname),
		editmode: "emacs",
	}
}

// REPLCommandInterpreter is an interface all interpreters have to implement.
// It is the workhorse doing interpretation of interactive
// commands.
//
// The REPL will delegate interpreting command strings (i.e. those which do not represent
// internal administrative commands) to the interpreter.
type REPLCommandInterpreter interface {
	InterpretCommand(string)
}

// adminCommand is a command handled by the REPL itself. A line is taken
// as an admin command only if its arguments are accepted; otherwise
// it goes to the interpreter, as `mode + 1` is a valid expression.
type adminCommand struct {
	usage   string
	accepts func(args []string) bool
	run     func(repl *BaseREPL, args []string, line string) (exit bool)
}

var adminCommands map[string]adminCommand

func init() {
	adminCommands = map[string]adminCommand{
		"help": {
			usage:   "help               : print this message",
			accepts: noArgs,
			run: func(repl *BaseREPL, _ []string, _ string) bool {
				repl.displayCommands(repl.errout)
				if repl.Helper != nil {
					repl.Helper(repl.errout)
				}
				return false
			},
		},
		"bye": {
			usage:   "bye                : quit application",
			accepts: noArgs,
			run: func(repl *BaseREPL, _ []string, _ string) bool {
				io.WriteString(repl.errout, "> goodbye!\n")
				return true
			},
		},
		"mode": {
			usage: "mode [vi|emacs]    : display or set current editing mode",
			accepts: func(args []string) bool {
				return len(args) == 1 || len(args) == 2 && (args[1] == "vi" || args[1] == "emacs")
			},
			run: func(repl *BaseREPL, args []string, _ string) bool {
				if len(args) == 2 {
					repl.editmode = args[1]
					if repl.readline != nil {
						repl.readline.SetVimMode(args[1] == "vi")
					}
					return false
				}
				fmt.Fprintf(repl.errout, "> current input mode: %s\n", repl.editmode)
				return false
			},
		},
		"setprompt": {
			usage: "setprompt [prompt] : set current prompt [to default]",
			accepts: func(args []string) bool {
				return len(args) == 1 || !strings.ContainsAny(args[1][:1], "=!<>+-*/%&|\\[(.:,")
			},
			run: func(repl *BaseREPL, _ []string, line string) bool {
				repl.prompt = fmt.Sprintf(stdprompt, repl.toolname)
				if p := strings.TrimSpace(strings.TrimPrefix(line, "setprompt")); p != "" {
					repl.prompt = p + " "
				}
				if repl.readline != nil {
					repl.readline.SetPrompt(repl.prompt)
				}
				return false
			},
		},
	}
}

func noArgs(args []string) bool {
	return len(args) == 1
}

// displayCommands prints a help message with the REPL's own commands.
func (repl *BaseREPL) displayCommands(out io.Writer) {
	fmt.Fprintf(out, welcomeMessage, repl.toolname, repl.version)
	io.WriteString(out, "\nThe following commands are available:\n\n")
	names := make([]string, 0, len(adminCommands))
	for name := range adminCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", adminCommands[name].usage)
	}
}

// Completer-tree for interactive sub-commands and Essence keywords
var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
	readline.PcItem("setprompt"),
	readline.PcItem("tokens"),
	readline.PcItem("eval"),
	readline.PcItem("show"),
	readline.PcItem("yaml"),
	readline.PcItem("find"),
	readline.PcItem("letting"),
	readline.PcItem("such that"),
	readline.PcItem("dominanceRelation"),
)

// Outputs returns stdout and stderr of this REPL.
func (repl *BaseREPL) Outputs() (io.Writer, io.Writer) {
	return repl.readline.Stdout(), repl.readline.Stderr()
}

// Prompt enters a REPL and executes commands.
// Commands are either internal administrative (setprompt, help, etc.)
// or interpreted statements. Input for which Continues reports true is
// extended by the following line.
func (repl *BaseREPL) Prompt(exitOnBye bool) {
	defer repl.readline.Close()
	fmt.Fprintf(repl.errout, welcomeMessage, repl.toolname, repl.version)
	var pending strings.Builder
	for {
		line, err := repl.readline.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 && pending.Len() == 0 {
				break
			}
			pending.Reset()
			repl.readline.SetPrompt(repl.prompt)
			continue
		} else if errors.Is(err, io.EOF) {
			break
		}
		pending.WriteString(line)
		text := strings.TrimSpace(pending.String())
		if text != "" && repl.Continues != nil && repl.Continues(text) {
			pending.WriteByte('\n')
			repl.readline.SetPrompt(fmt.Sprintf(contprompt, repl.toolname))
			continue
		}
		pending.Reset()
		repl.readline.SetPrompt(repl.prompt)
		if doExit := repl.executeCommand(text); doExit {
			break
		}
	}
	if exitOnBye {
		essence.Exit(0)
	}
}

// executeCommand runs an admin command or hands the text to the
// interpreter. If it returns true, the REPL should terminate.
func (repl *BaseREPL) executeCommand(text string) bool {
	args := strings.Fields(text)
	if len(args) == 0 {
		return false
	}
	if cmd, ok := adminCommands[args[0]]; ok && cmd.accepts(args) {
		return cmd.run(repl, args, text)
	}
	trace().Debugf("call interpreter on: '%s'", text)
	if repl.Interpreter != nil {
		repl.Interpreter.InterpretCommand(text)
	}
	return false
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
