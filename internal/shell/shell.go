// file: internal/shell/shell.go

package shell

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/abiosoft/ishell"
	"github.com/abiosoft/readline"
	"github.com/ha1tch/vd/internal/message"
	"github.com/ha1tch/vd/pkg/disk"
)

// Handler runs one shell command against the session
type Handler func(s *Session, args []string, w io.Writer) error

type command struct {
	name    string
	help    string
	minArgs int
	maxArgs int
	run     Handler
}

var commands = map[string]command{
	"ls":       {"ls", "ls [pattern] - print directory contents", 0, 1, Ls},
	"blocks":   {"blocks", "blocks - print the block map", 0, 0, Blocks},
	"todisk":   {"todisk", "todisk <src> [dest] - copy a host file onto the disk", 1, 2, ToDisk},
	"fromdisk": {"fromdisk", "fromdisk <src> [dest] - copy a file from the disk to the host", 1, 2, FromDisk},
	"rm":       {"rm", "rm <name> - remove a file from the disk", 1, 1, Rm},
	"cat":      {"cat", "cat <name> - print a file stored on the disk", 1, 1, Cat},
	"info":     {"info", "info - print disk geometry and free space", 0, 0, Info},
	"check":    {"check", "check - verify directory and block occupancy", 0, 0, Check},
}

// Session is an interactive session over one loaded disk. Mutating commands
// save the container after each success.
type Session struct {
	disk *disk.Disk
}

// New creates a session over d
func New(d *disk.Disk) *Session {
	return &Session{disk: d}
}

// Disk returns the disk the session operates on
func (s *Session) Disk() *disk.Disk {
	return s.disk
}

// Exec runs the named command
func (s *Session) Exec(name string, args []string, w io.Writer) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return fmt.Errorf("usage: %s", cmd.help)
	}
	return cmd.run(s, args, w)
}

// ErrorText returns the line shown for an error of the named command, worded
// like the one-shot commands
func (s *Session) ErrorText(name string, args []string, err error) string {
	return message.Text(name, append([]string{s.disk.Path()}, args...), err)
}

// Run starts the interactive loop on the terminal. It returns when the user
// exits the shell.
func (s *Session) Run() {
	sh := ishell.NewWithConfig(&readline.Config{
		Prompt: filepath.Base(s.disk.Path()) + " > ",
	})
	sh.SetHomeHistoryPath(".vd_history")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		sh.AddCmd(&ishell.Cmd{
			Name: cmd.name,
			Help: cmd.help,
			Func: func(c *ishell.Context) {
				if err := s.Exec(cmd.name, c.Args, contextWriter{c}); err != nil {
					c.Err(errors.New(s.ErrorText(cmd.name, c.Args, err)))
				}
			},
		})
	}

	sh.Println("vd shell on " + s.disk.Path() + ", type help for commands")
	sh.Run()
}

// contextWriter sends output through the shell so it does not tear the prompt
type contextWriter struct {
	c *ishell.Context
}

func (cw contextWriter) Write(p []byte) (int, error) {
	cw.c.Print(string(p))
	return len(p), nil
}
