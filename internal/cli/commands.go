// file: internal/cli/commands.go

package cli

import (
	"github.com/ha1tch/vd/cmd/add"
	"github.com/ha1tch/vd/cmd/blocks"
	"github.com/ha1tch/vd/cmd/check"
	"github.com/ha1tch/vd/cmd/create"
	"github.com/ha1tch/vd/cmd/delete"
	"github.com/ha1tch/vd/cmd/extract"
	"github.com/ha1tch/vd/cmd/info"
	"github.com/ha1tch/vd/cmd/list"
	"github.com/ha1tch/vd/cmd/remove"
	"github.com/ha1tch/vd/internal/shell"
	"github.com/ha1tch/vd/pkg/disk"
	"github.com/spf13/cobra"
)

func (a *App) createCommand() *cobra.Command {
	opts := create.DefaultCreateOptions()

	cmd := &cobra.Command{
		Use:   "create <disk_name> <size> <block_size>",
		Short: "Create a virtual disk called disk_name.vd with the given size and block size in bytes",
		Args:  cobra.ExactArgs(3),
		RunE: a.run(func(args []string) error {
			size, err := parseSize(args[1])
			if err != nil {
				return err
			}
			blockSize, err := parseSize(args[2])
			if err != nil {
				return err
			}

			opts.Config = a.flags.config(a.errOut)
			opts.Quiet = a.flags.quiet
			opts.Out = a.out
			_, err = create.Create(args[0], size, blockSize, opts)
			return err
		}),
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing disk")

	return cmd
}

func (a *App) deleteCommand() *cobra.Command {
	opts := delete.DefaultDeleteOptions()

	cmd := &cobra.Command{
		Use:   "delete <disk_name.vd>",
		Short: "Delete a virtual disk container",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(args []string) error {
			opts.Quiet = a.flags.quiet
			opts.In = a.in
			opts.Out = a.out
			_, err := delete.Delete(args[0], opts)
			return err
		}),
	}
	cmd.Flags().BoolVarP(&opts.Force, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (a *App) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <disk> <file_name>",
		Short: "Remove a file from the disk",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(args []string) error {
			opts := remove.DefaultRemoveOptions()
			opts.Config = a.flags.config(a.errOut)
			opts.Quiet = a.flags.quiet
			opts.Out = a.out
			return remove.Remove(args[0], args[1], opts)
		}),
	}
}

func (a *App) toDiskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "todisk <disk> <src_file_name> [dest_file_name]",
		Short: "Copy a file from the host onto the disk",
		Args:  cobra.RangeArgs(2, 3),
		RunE: a.run(func(args []string) error {
			dest := ""
			if len(args) == 3 {
				dest = args[2]
			}

			opts := add.DefaultAddOptions()
			opts.Config = a.flags.config(a.errOut)
			opts.Quiet = a.flags.quiet
			opts.Out = a.out
			return add.Add(args[0], args[1], dest, opts)
		}),
	}
}

func (a *App) fromDiskCommand() *cobra.Command {
	opts := extract.DefaultExtractOptions()
	var all bool

	cmd := &cobra.Command{
		Use:   "fromdisk <disk> <src_file_name> [dest_file_name]",
		Short: "Copy a file from the disk to the host",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.RangeArgs(2, 3)(cmd, args)
		},
		RunE: a.run(func(args []string) error {
			opts.Config = a.flags.config(a.errOut)
			opts.Quiet = a.flags.quiet
			opts.Out = a.out

			if all {
				return extract.ExtractAll(args[0], opts)
			}

			dest := ""
			if len(args) == 3 {
				dest = args[2]
			}
			return extract.Extract(args[0], args[1], dest, opts)
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "extract every file of the disk")
	cmd.Flags().StringVarP(&opts.OutputDir, "dir", "d", "", "directory to extract files to")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", true, "replace existing host files")

	return cmd
}

func (a *App) listCommand() *cobra.Command {
	opts := list.DefaultListOptions()

	cmd := &cobra.Command{
		Use:     "ls <disk>",
		Aliases: []string{"list"},
		Short:   "Print disk directory contents",
		Args:    cobra.ExactArgs(1),
		RunE: a.run(func(args []string) error {
			opts.Config = a.flags.config(a.errOut)
			opts.Out = a.out
			return list.List(args[0], opts)
		}),
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort by name or size (default: directory order)")
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", false, "reverse the order")
	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "*", "only list names matching the pattern")

	return cmd
}

func (a *App) blocksCommand() *cobra.Command {
	opts := blocks.DefaultBlocksOptions()

	cmd := &cobra.Command{
		Use:   "blocks <disk>",
		Short: "Print disk block map",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(args []string) error {
			opts.Config = a.flags.config(a.errOut)
			opts.Out = a.out
			return blocks.Blocks(args[0], opts)
		}),
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func (a *App) infoCommand() *cobra.Command {
	opts := info.DefaultInfoOptions()
	var noValidate bool

	cmd := &cobra.Command{
		Use:   "info <disk>",
		Short: "Print disk geometry, usage and consistency warnings",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(args []string) error {
			opts.Config = a.flags.config(a.errOut)
			opts.Quiet = a.flags.quiet
			opts.Validate = !noValidate
			opts.Out = a.out
			return info.Info(args[0], opts)
		}),
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&opts.Verbose, "long", false, "show disk parameters")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip the consistency check")

	return cmd
}

func (a *App) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <disk>",
		Short: "Verify directory records against block occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(args []string) error {
			opts := check.DefaultCheckOptions()
			opts.Config = a.flags.config(a.errOut)
			opts.Quiet = a.flags.quiet
			opts.Out = a.out
			return check.Check(args[0], opts)
		}),
	}
}

func (a *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <disk>",
		Short: "Open an interactive session on the disk",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(args []string) error {
			d, err := disk.Open(args[0], a.flags.config(a.errOut))
			if err != nil {
				return err
			}
			shell.New(d).Run()
			return nil
		}),
	}
}
