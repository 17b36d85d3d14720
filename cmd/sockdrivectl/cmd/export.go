package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caiiiycuk/sockdrive/backup"
	"github.com/caiiiycuk/sockdrive/errors"
	"github.com/caiiiycuk/sockdrive/log"
)

var exportCfg struct {
	compression backup.CompressionType
	sectors     uint32
}

// ExportCmd represents the export subcommand
var ExportCmd = &cobra.Command{
	Use:   "export endpoint file",
	Short: "Export a remote drive to a compressed local image",
	RunE:  exportImage,
}

func exportImage(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: export endpoint file")
	}

	d, err := openDrive(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	sectors := exportCfg.sectors
	if sectors == 0 {
		sectors = d.Geometry().Size
	}

	file, err := os.Create(args[1])
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", args[1])
	}
	defer file.Close()

	log.Infof("exporting %d sectors to %s", sectors, args[1])
	return backup.Export(d, sectors, exportCfg.compression, file)
}

func init() {
	ExportCmd.Flags().Var(
		&exportCfg.compression, "compression",
		"compression type of the image (lz4|xz)")
	ExportCmd.Flags().Uint32Var(
		&exportCfg.sectors, "sectors", 0,
		"number of sectors to export (0 = full drive)")
}
