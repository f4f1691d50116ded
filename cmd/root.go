package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "audiolib",
		Short:         "audiolib: inspect audio libraries and simulate pooled playback",
		Long:          "audiolib loads hierarchical audio libraries, resolves keys through their parent chain, and plays them through a pooled, tick-driven playback coordinator.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLibraryCmd(app),
		newPlayCmd(app),
	)

	return rootCmd
}
