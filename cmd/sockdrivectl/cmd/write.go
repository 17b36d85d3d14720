package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/caiiiycuk/sockdrive/errors"
)

// WriteCmd represents the write subcommand
var WriteCmd = &cobra.Command{
	Use:   "write endpoint sector file",
	Short: "Write one sector of a remote drive",
	Long: `Writes the content of a local file to a single sector
of a remote drive. Short files are zero-padded to the sector size,
longer files are rejected.`,
	RunE: writeSector,
}

func writeSector(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: write endpoint sector file")
	}

	sector, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid sector %q", args[1])
	}

	data, err := os.ReadFile(args[2])
	if err != nil {
		return errors.Wrapf(err, "couldn't read %s", args[2])
	}

	d, err := openDrive(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	if uint32(len(data)) > d.SectorSize() {
		return errors.Newf("%s holds %d bytes, more than one %d-byte sector",
			args[2], len(data), d.SectorSize())
	}

	buf := make([]byte, d.SectorSize())
	copy(buf, data)
	if err := d.Write(uint32(sector), buf); err != nil {
		return errors.Wrapf(err, "couldn't write sector %d", sector)
	}

	return nil
}
