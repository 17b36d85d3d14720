package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caiiiycuk/sockdrive/backup"
	"github.com/caiiiycuk/sockdrive/errors"
	"github.com/caiiiycuk/sockdrive/log"
)

var importCfg struct {
	compression backup.CompressionType
}

// ImportCmd represents the import subcommand
var ImportCmd = &cobra.Command{
	Use:   "import endpoint file",
	Short: "Import a compressed local image into a remote drive",
	RunE:  importImage,
}

func importImage(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: import endpoint file")
	}

	file, err := os.Open(args[1])
	if err != nil {
		return errors.Wrapf(err, "couldn't open %s", args[1])
	}
	defer file.Close()

	d, err := openDrive(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	sectors, err := backup.Import(d, importCfg.compression, file)
	if err != nil {
		return err
	}

	log.Infof("imported %d sectors from %s", sectors, args[1])
	return nil
}

func init() {
	ImportCmd.Flags().Var(
		&importCfg.compression, "compression",
		"compression type of the image (lz4|xz)")
}
