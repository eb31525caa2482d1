package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/roster"
	"github.com/trezcool/missingwork/core/student"
	"github.com/trezcool/missingwork/services/media"
)

var (
	// mockable
	isTerminalFunc = func() bool { return term.IsTerminal(int(syscall.Stdin)) }
	readLineFunc   = readLine

	errHelp = errors.New("help provided")

	stdin = bufio.NewReader(os.Stdin)
)

type commandLine struct {
	out       io.Writer
	mediaOpts media.Options

	grades      *grade.Service
	students    *student.Service
	assignments *assignment.Service
	profiles    *profile.Service
	roster      *roster.Service
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  setup -name NAME -app APP_NAME -logo FILE - complete the first-run setup\n")
	cli.printf("  status - show whether setup is complete\n")
	cli.printf("  grade add|list|delete - manage grades\n")
	cli.printf("  student add|import|update|delete|list|missing - manage students\n")
	cli.printf("  assignment add|list|delete|remind - manage assignments\n")
	cli.printf("  export -out FILE.xlsx - export the missing work overview\n")
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

// run executes the command in args (program name first).
// A StorageError is reported as a warning, the command itself went through.
func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	err := cli.dispatch(context.Background(), args[1], args[2:])
	var sErr *core.StorageError
	if errors.As(err, &sErr) {
		cli.printf("warning: %s (the change will be lost on exit)\n", sErr.Error())
		return nil
	}
	return err
}

func (cli *commandLine) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "setup":
		return cli.setup(ctx, args)
	case "status":
		return cli.status(ctx)
	case "grade", "student", "assignment", "export":
		// everything else needs a profile
	default:
		cli.printUsage()
		return errHelp
	}

	if ok, err := cli.profiles.IsConfigured(ctx); err != nil {
		return err
	} else if !ok {
		return profile.ErrNotConfigured
	}

	switch cmd {
	case "grade":
		return cli.grade(ctx, args)
	case "student":
		return cli.student(ctx, args)
	case "assignment":
		return cli.assignment(ctx, args)
	default:
		return cli.export(ctx, args)
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args into fs, turning -h into errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// usage prints fs usage and returns errHelp.
func usage(fs *flag.FlagSet) error {
	fs.Usage()
	return errHelp
}

// isSet reports whether the flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	var found bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// subcommand splits args into the subcommand name and its flags.
func (cli *commandLine) subcommand(area string, args []string, names ...string) (string, []string, error) {
	if len(args) == 0 {
		cli.printf("Usage: %s %s\n", area, strings.Join(names, "|"))
		return "", nil, errHelp
	}
	for _, n := range names {
		if args[0] == n {
			return n, args[1:], nil
		}
	}
	cli.printf("Usage: %s %s\n", area, strings.Join(names, "|"))
	return "", nil, errHelp
}

func (cli *commandLine) encodeImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return media.EncodeImage(f, cli.mediaOpts)
}

// prompt asks for a value on the terminal, it returns "" when stdin is not one.
func (cli *commandLine) prompt(label string) (string, error) {
	if !isTerminalFunc() {
		return "", nil
	}
	cli.printf("%s: ", label)
	line, err := readLineFunc()
	if err != nil {
		return "", err
	}
	return core.CleanString(line), nil
}

func readLine() (string, error) {
	line, err := stdin.ReadString('\n')
	if err == io.EOF {
		err = nil
	}
	return line, err
}

func mediaOptions(conf *core.Config) media.Options {
	return media.Options{MaxBytes: conf.Media.MaxBytes, MaxDimension: conf.Media.MaxDimension}
}
