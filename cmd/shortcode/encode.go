package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/paraglidehq/shortcode"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newEncodeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [integer...]",
		Short: "Encode integers as short codes",
		Long: `Encode each integer argument and print one short code per line.
Without arguments, integers are read from standard input, one per line.
Integers beyond the int64 range are encoded with arbitrary precision.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(cmd.InOrStdin(), args, func(in string) error {
				out, err := o.encode(in)
				if err != nil {
					log.WithField("input", in).Debugf("encode failed: %v", err)
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			})
		},
	}
}

func (o *rootOptions) encode(in string) (string, error) {
	n, err := strconv.ParseInt(in, 10, 64)
	if err == nil {
		s, err := o.codec.Encode(n)
		if errors.Is(err, shortcode.ErrOverflow) {
			// value + offset is past int64
			return o.codec.EncodeBig(big.NewInt(n))
		}
		return s, err
	}
	if !errors.Is(err, strconv.ErrRange) {
		return "", fmt.Errorf("not an integer: %q", in)
	}
	b, ok := new(big.Int).SetString(in, 10)
	if !ok {
		return "", fmt.Errorf("not an integer: %q", in)
	}
	return o.codec.EncodeBig(b)
}

// eachInput calls fn for every argument, or for every non-blank line of r
// when there are no arguments.
func eachInput(r io.Reader, args []string, fn func(string) error) error {
	if len(args) > 0 {
		for _, arg := range args {
			if err := fn(arg); err != nil {
				return err
			}
		}
		return nil
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
