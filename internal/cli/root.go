// file: internal/cli/root.go

package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/ha1tch/vd/internal/message"
	"github.com/spf13/cobra"
)

// App holds the streams and flags of one vd invocation
type App struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	flags  globalFlags

	// positional arguments of the command that ran, for error messages
	args []string
}

// NewApp creates an application reading from in and writing to out and errOut
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{in: in, out: out, errOut: errOut}
}

// RootCommand builds the vd command tree
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "vd",
		Short: "Single-file virtual disk",
		Long: "vd stores files in a fixed-size virtual disk kept in one host file.\n" +
			"The disk is split into blocks and has a flat directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.flags.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	a.flags.register(root.PersistentFlags())

	root.AddCommand(
		a.createCommand(),
		a.deleteCommand(),
		a.removeCommand(),
		a.toDiskCommand(),
		a.fromDiskCommand(),
		a.listCommand(),
		a.blocksCommand(),
		a.infoCommand(),
		a.checkCommand(),
		a.shellCommand(),
	)

	return root
}

// Execute runs vd with args and returns the process exit status
func (a *App) Execute(args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	name := ""
	if cmd != nil {
		name = cmd.Name()
	}
	a.printError(message.Text(name, a.args, err))
	return ExitCode(err)
}

// run wraps a command body so its arguments are kept for error messages
func (a *App) run(fn func(args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a.args = args
		return fn(args)
	}
}

func (a *App) printError(msg string) {
	color.New(color.FgRed).Fprintln(a.errOut, msg)
}

// Execute runs vd with the process streams
func Execute(args []string, in io.Reader, out, errOut io.Writer) int {
	return NewApp(in, out, errOut).Execute(args)
}
