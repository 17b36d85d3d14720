package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caiiiycuk/sockdrive"
	"github.com/caiiiycuk/sockdrive/config"
	"github.com/caiiiycuk/sockdrive/drive"
	"github.com/caiiiycuk/sockdrive/log"
)

var rootCfg struct {
	owner       string
	name        string
	token       string
	aheadRange  uint8
	memoryLimit uint32
	verbose     bool
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use: "sockdrivectl",
	Long: `sockdrivectl inspects and transfers sockdrive volumes

Find more information at github.com/caiiiycuk/sockdrive.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		if rootCfg.verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command, with the child commands and flags
// registered in init. This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	RootCmd.AddCommand(
		VersionCmd,
		ReadCmd,
		WriteCmd,
		ExportCmd,
		ImportCmd,
	)

	RootCmd.PersistentFlags().StringVar(
		&rootCfg.owner, "owner", "",
		"drive owner, passed through to the server")
	RootCmd.PersistentFlags().StringVar(
		&rootCfg.name, "name", "",
		"drive name, passed through to the server")
	RootCmd.PersistentFlags().StringVar(
		&rootCfg.token, "token", "",
		"access token, passed through to the server")
	RootCmd.PersistentFlags().Uint8Var(
		&rootCfg.aheadRange, "ahead-range", config.DefaultAheadRange,
		"prefetch width in sectors (1..255)")
	RootCmd.PersistentFlags().Uint32Var(
		&rootCfg.memoryLimit, "memory-limit", config.DefaultMemoryLimit,
		"block cache budget in bytes")
	RootCmd.PersistentFlags().BoolVarP(
		&rootCfg.verbose, "verbose", "v",
		false, "log available information")
}

// openDrive connects to the given endpoint using the root flags.
func openDrive(endpoint string) (*drive.Drive, error) {
	cfg := config.NewDefaultDriveConfig()
	cfg.AheadRange = rootCfg.aheadRange
	cfg.MemoryLimit = rootCfg.memoryLimit

	creds := config.Credentials{
		Owner: rootCfg.owner,
		Name:  rootCfg.name,
		Token: rootCfg.token,
	}

	log.Debugf("opening drive %s at %s", creds.String(), endpoint)
	return sockdrive.OpenDrive(endpoint, creds, cfg)
}
