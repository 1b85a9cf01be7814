package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paraglidehq/shortcode"
)

func newAlphabetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alphabet [preset]",
		Short: "List alphabet presets, or print one",
		Long: `Without arguments, list the alphabet presets and the active alphabet.
With a preset name, print that preset's symbols.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				a, ok := shortcode.Preset(args[0])
				if !ok {
					return fmt.Errorf("unknown alphabet preset %q", args[0])
				}
				_, err := fmt.Fprintln(out, a)
				return err
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, name := range shortcode.PresetNames() {
				a, _ := shortcode.Preset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, a.Len(), a)
			}
			active := o.codec.Alphabet()
			fmt.Fprintf(w, "active\t%d\t%s\n", active.Len(), active)
			return w.Flush()
		},
	}
}
