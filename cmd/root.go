package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"btouch/internal/btouch"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd(&btouch.Dispatcher{}).Execute()
}

func newRootCmd(d *btouch.Dispatcher) *cobra.Command {
	opts := btouch.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:           "btouch <.extension> <file1> [file2 ...]",
		Short:         "Touch a batch of files sharing an extension",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Stdout = cmd.OutOrStdout()
			d.Stderr = cmd.ErrOrStderr()

			_, err := d.Run(opts, args)
			var usageErr *btouch.UsageError
			if errors.As(err, &usageErr) {
				fmt.Fprint(cmd.ErrOrStderr(), btouch.Usage)
			}
			return err
		},
	}

	// Everything after the extension is a file name, even if it starts with "-".
	rootCmd.Flags().SetInterspersed(false)
	bindFlags(rootCmd, &opts)

	// Keep the fixed usage text instead of cobra's generated help.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), btouch.Usage)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprint(cmd.ErrOrStderr(), btouch.Usage)
		return nil
	})
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprint(cmd.ErrOrStderr(), btouch.Usage)
		return &btouch.UsageError{Reason: err.Error()}
	})
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

func bindFlags(cmd *cobra.Command, opts *btouch.Options) {
	cmd.Flags().BoolVarP(&opts.Install, "install", "i", false, "Move this executable to the install directory and mark it executable")
	cmd.Flags().StringVar(&opts.InstallDir, "prefix", opts.InstallDir, "Install directory")
	cmd.Flags().BoolVar(&opts.Sudo, "sudo", false, "Run the install move through sudo")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print what would be done without touching anything")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only report failures")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable coloured output")
}
