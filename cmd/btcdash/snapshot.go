package main

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/harmony-one/btcdash/dashboard"
	"github.com/harmony-one/btcdash/internal/cli"
)

var snapshotJSONFlag = cli.BoolFlag{
	Name:     "json",
	Usage:    "print the snapshot as json instead of a table",
	DefValue: false,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "print one dashboard snapshot of the node and exit",
	Long:  "print one dashboard snapshot of the node and exit",
	Args:  cobra.NoArgs,
	Run:   runSnapshot,
}

func getSnapshotFlags() []cli.Flag {
	var flags []cli.Flag

	flags = append(flags, configFlag)
	flags = append(flags, nodeFlags...)
	flags = append(flags, marketFlags...)
	flags = append(flags, logFlags...)
	flags = append(flags, snapshotJSONFlag)

	return flags
}

func registerSnapshotCmdFlags() error {
	return cli.RegisterFlags(snapshotCmd, getSnapshotFlags())
}

func runSnapshot(cmd *cobra.Command, args []string) {
	cfg, err := getBtcdashConfig(cmd, nil)
	if err != nil {
		fmt.Println(err)
		os.Exit(128)
	}
	if err := setupLog(cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	client, err := dialNode(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer client.Close()

	aggregator := dashboard.NewAggregator(client, newMarketSource(cfg.Market, client))
	snapshot, err := aggregator.Snapshot(context.Background())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	asJSON := cli.GetBoolFlagValue(cmd, snapshotJSONFlag)
	if err := renderSnapshot(os.Stdout, snapshot, asJSON); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func renderSnapshot(w io.Writer, s *dashboard.Snapshot, asJSON bool) error {
	if asJSON {
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(s.Rows())
	table.Render()
	return nil
}
