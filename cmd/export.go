package main

import (
	"ElectionSeed/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		output string
		input  importOptions
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "只解析不入库，把合并后的数据集导出为 xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(root, false, input.override)
			if err != nil {
				return err
			}
			ds, files, err := a.importService.Load(cmd.Context())
			if err != nil {
				return dataError(err)
			}
			if err := export.WriteWorkbook(ds, output); err != nil {
				return err
			}
			a.logger.WithField("files", len(files)).Infof("已导出到 %s", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "输出 xlsx 文件路径（必填）")
	cmd.Flags().StringVar(&input.shosenkyoDir, "shosenkyo-dir", "", "小选举区 CSV 目录（覆盖配置）")
	cmd.Flags().StringVar(&input.hireidaihyoDir, "hireidaihyo-dir", "", "比例代表 CSV 目录（覆盖配置）")
	cmd.Flags().StringVar(&input.encoding, "encoding", "", "源文件编码：utf-8 / shift_jis（覆盖配置）")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
