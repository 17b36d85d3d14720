package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/caiiiycuk/sockdrive/errors"
)

// ReadCmd represents the read subcommand
var ReadCmd = &cobra.Command{
	Use:   "read endpoint sector",
	Short: "Read one sector of a remote drive",
	Long: `Reads a single sector of a remote drive
and prints its content as a hex dump.`,
	RunE: readSector,
}

func readSector(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: read endpoint sector")
	}

	sector, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid sector %q", args[1])
	}

	d, err := openDrive(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	buf := make([]byte, d.SectorSize())
	if err := d.Read(uint32(sector), buf); err != nil {
		return errors.Wrapf(err, "couldn't read sector %d", sector)
	}

	fmt.Print(hex.Dump(buf))
	return nil
}
