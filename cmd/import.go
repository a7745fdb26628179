package main

import (
	"encoding/json"
	"fmt"

	"ElectionSeed/internal/config"

	"github.com/spf13/cobra"
)

type importOptions struct {
	shosenkyoDir   string
	hireidaihyoDir string
	encoding       string
	workers        int
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "解析两种格式的源文件并重建选举表",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.shosenkyoDir, "shosenkyo-dir", "", "小选举区 CSV 目录（覆盖配置）")
	cmd.Flags().StringVar(&opts.hireidaihyoDir, "hireidaihyo-dir", "", "比例代表 CSV 目录（覆盖配置）")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "源文件编码：utf-8 / shift_jis（覆盖配置）")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "并发解析的文件数（覆盖配置）")
	return cmd
}

// override 命令行参数覆盖配置文件中的输入设置
func (o importOptions) override(cfg *config.Config) {
	if o.shosenkyoDir != "" {
		cfg.Input.ShosenkyoDir = o.shosenkyoDir
	}
	if o.hireidaihyoDir != "" {
		cfg.Input.HireidaihyoDir = o.hireidaihyoDir
	}
	if o.encoding != "" {
		cfg.Input.Encoding = o.encoding
	}
	if o.workers > 0 {
		cfg.Input.Workers = o.workers
	}
}

func runImport(cmd *cobra.Command, root *rootOptions, opts importOptions) error {
	a, err := bootstrap(root, true, opts.override)
	if err != nil {
		return err
	}
	defer a.close()

	summary, err := a.importService.Run(cmd.Context())
	if err != nil {
		return dataError(err)
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
