package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"wishlist-stock/services/stockcheck"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no input given")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		err := p.in.Err()
		if err == nil {
			err = errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p prompter) complain(err error) {
	fmt.Fprintln(p.out, text.FgRed.Sprint(err.Error()))
}

// readRequest asks for a ZIP code and a radius until both are valid. An
// empty radius means the default.
func readRequest(in io.Reader, out io.Writer) (stockcheck.Request, error) {
	p := prompter{in: bufio.NewScanner(in), out: out}

	var req stockcheck.Request
	for {
		postalCode, err := p.ask("Enter a 5-digit ZIP code: ")
		if err != nil {
			return stockcheck.Request{}, err
		}
		err = stockcheck.ValidatePostalCode(postalCode)
		if err != nil {
			p.complain(err)
			continue
		}
		req.PostalCode = postalCode
		break
	}

	for {
		answer, err := p.ask(fmt.Sprintf("Search radius in miles %v [%d]: ", stockcheck.Radii, stockcheck.DefaultRadius))
		if err != nil {
			return stockcheck.Request{}, err
		}
		if answer == "" {
			req.Radius = stockcheck.DefaultRadius
			break
		}
		radius, err := strconv.Atoi(answer)
		if err == nil {
			err = stockcheck.ValidateRadius(radius)
		} else {
			err = stockcheck.ErrInvalidRadius
		}
		if err != nil {
			p.complain(err)
			continue
		}
		req.Radius = radius
		break
	}

	return req, nil
}

func newPromptCommand(g *globals) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Asks for a ZIP code and radius on stdin, then runs check.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secrets, err := loadSecrets()
			if err != nil {
				return err
			}
			req, err := readRequest(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), g, secrets, req, flags)
		},
	}
	flags.register(cmd)
	return cmd
}
