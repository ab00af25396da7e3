package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hotswaplabs/redefine"
	"github.com/hotswaplabs/redefine/bcimap"
	"github.com/hotswaplabs/redefine/bytecode"
	"github.com/hotswaplabs/redefine/dis"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare OLD NEW",
		Short: "Decide whether two method files are equivalent",
		Long: `Compare reads two method description files and reports whether the new
method body is equivalent to the old one. In strict mode the bodies must be
interchangeable at execution time; in switchable mode the new body may
contain inserted fragments, and the old-to-new bci correspondence is
available with --fragments.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupColor()
			oldM, err := loadMethod(args[0])
			if err != nil {
				return err
			}
			newM, err := loadMethod(args[1])
			if err != nil {
				return err
			}
			opts := traceOptions()

			mode, _ := cmd.Flags().GetString("mode")
			var (
				equivalent bool
				bciMap     *bcimap.Map
			)
			switch mode {
			case "strict":
				equivalent = redefine.MethodsEMCP(oldM, newM, opts...)
			case "switchable":
				bciMap, equivalent = redefine.MethodsSwitchable(oldM, newM, opts...)
			default:
				return fmt.Errorf("unknown mode %q (want strict or switchable)", mode)
			}

			if showDis, _ := cmd.Flags().GetBool("dis"); showDis {
				if err := printDisassembly(args[0], oldM, args[1], newM); err != nil {
					return err
				}
			}
			if !equivalent {
				color.Red("not equivalent")
				os.Exit(1)
			}
			color.Green("equivalent")
			if showFragments, _ := cmd.Flags().GetBool("fragments"); showFragments && bciMap != nil {
				if err := printFragments(bciMap); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("mode", "strict", `Comparison mode: "strict" or "switchable"`)
	cmd.Flags().Bool("fragments", false, "Print the recorded fragments as JSON (switchable mode)")
	cmd.Flags().Bool("dis", false, "Print the disassembly of both methods")
	return cmd
}

func printDisassembly(oldPath string, oldM *bytecode.Method, newPath string, newM *bytecode.Method) error {
	for _, side := range []struct {
		path string
		m    *bytecode.Method
	}{{oldPath, oldM}, {newPath, newM}} {
		instructions, err := dis.Disassemble(side.m)
		if err != nil {
			return err
		}
		fmt.Printf("%s:\n", side.path)
		dis.Print(instructions, os.Stdout)
	}
	return nil
}

func printFragments(m *bcimap.Map) error {
	formatter := prettyjson.NewFormatter()
	formatter.DisabledColor = viper.GetBool("no-color") || color.NoColor
	out, err := formatter.Marshal(m.Fragments())
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
