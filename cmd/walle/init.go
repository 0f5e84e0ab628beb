package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"walle/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create walle.toml and a starter program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

const starterManifest = `[canvas]
size = 32

[run]
main = "main.pw"
max_steps = 100000

[output]
format = "ansi"
`

const starterProgram = `Spawn(0, 0)
Color("Blue")
Size(1)
n <- 0
loop
DrawLine(1, 1, 1)
n <- n + 1
GoTo [loop] (n < GetCanvasSize() - 1)
Color("Red")
DrawRectangle(0, 0, 0, 8, 8)
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	manifest := filepath.Join(dir, project.ManifestName)
	if _, err := os.Stat(manifest); err == nil {
		return fmt.Errorf("%s already exists", manifest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(manifest, []byte(starterManifest), 0o644); err != nil {
		return err
	}
	mainPath := filepath.Join(dir, "main.pw")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(starterProgram), 0o644); err != nil {
			return err
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifest)
	}
	return nil
}
