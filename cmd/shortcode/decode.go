package main

import (
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/paraglidehq/shortcode"
)

func newDecodeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [code...]",
		Short: "Decode short codes to integers",
		Long: `Decode each short code argument and print one integer per line.
Without arguments, codes are read from standard input, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(cmd.InOrStdin(), args, func(in string) error {
				out, err := o.decode(in)
				if err != nil {
					log.WithField("input", in).Debugf("decode failed: %v", err)
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			})
		},
	}
}

func (o *rootOptions) decode(in string) (string, error) {
	n, err := o.codec.Decode(in)
	if err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	if !errors.Is(err, shortcode.ErrOverflow) {
		return "", err
	}
	b, err := o.codec.DecodeBig(in)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
