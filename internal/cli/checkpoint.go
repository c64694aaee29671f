package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lazypower/hologram/internal/checkpoint"
	"github.com/lazypower/hologram/internal/config"
	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect the checkpoint chain",
}

var checkpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checkpoints, newest first",
	RunE:  runCheckpointList,
}

var checkpointRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Run the recovery chain and print the result",
	RunE:  runCheckpointRecover,
}

func init() {
	checkpointCmd.AddCommand(checkpointListCmd)
	checkpointCmd.AddCommand(checkpointRecoverCmd)
}

func checkpointDir() (string, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return "", err
	}
	return cfg.CheckpointDir()
}

func runCheckpointList(cmd *cobra.Command, args []string) error {
	dir, err := checkpointDir()
	if err != nil {
		return err
	}

	names := checkpoint.List(dir)
	if len(names) == 0 {
		fmt.Println("no checkpoints")
		return nil
	}

	pointer, _ := checkpoint.ReadPointer(dir)
	for _, name := range names {
		marker := " "
		if name == pointer {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return nil
}

func runCheckpointRecover(cmd *cobra.Command, args []string) error {
	dir, err := checkpointDir()
	if err != nil {
		return err
	}

	res := checkpoint.Recover(dir)
	if res == nil {
		fmt.Fprintln(os.Stderr, "no valid checkpoint found")
		return nil
	}

	if res.RecoveryPath != "" {
		fmt.Fprintf(os.Stderr, "recovered via %s\n", res.RecoveryPath)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Checkpoint)
}
