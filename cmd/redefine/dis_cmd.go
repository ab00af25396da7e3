package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hotswaplabs/redefine/dis"
)

func newDisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dis FILE",
		Short: "Disassemble a method file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMethod(args[0])
			if err != nil {
				return err
			}
			instructions, err := dis.Disassemble(m)
			if err != nil {
				return err
			}
			dis.Print(instructions, os.Stdout)
			return nil
		},
	}
}
