package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "election-seed",
		Short:         "将众议院选举开票结果 CSV 规范化并写入关系表",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "config", "config.yaml 所在目录")

	cmd.AddCommand(newImportCmd(&opts))
	cmd.AddCommand(newServeCmd(&opts))
	cmd.AddCommand(newExportCmd(&opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
