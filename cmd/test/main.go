package test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/cli"
	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/reporter"
	"github.com/RedTeamPentesting/slotfuzz/request"
	"github.com/RedTeamPentesting/slotfuzz/response"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Options collect options for the command.
type Options struct {
	Request     *request.Request // the template for the HTTP request
	ShowRequest bool
	Timeout     time.Duration

	response.TransportOptions
}

var opts Options

// AddCommand adds the command to c.
func AddCommand(c *cobra.Command) {
	c.AddCommand(cmd)

	fs := cmd.Flags()
	fs.SortFlags = false

	opts.Request = request.New("")
	request.AddFlags(opts.Request, fs)
	response.AddTransportFlags(fs, &opts.TransportOptions)

	fs.DurationVar(&opts.Timeout, "timeout", response.DefaultTimeout, "abort the request after `duration`")
	fs.BoolVar(&opts.ShowRequest, "show-request", false, "also print HTTP request")
}

func header(name string) string {
	if len(name) == 0 {
		return strings.Repeat("-", 80)
	}

	if len(name) > 70 {
		return name
	}

	return fmt.Sprintf("---- %s %s", name, strings.Repeat("-", 80-6-len(name)))
}

var cmd = &cobra.Command{
	Use:                   "test [options] BASEURL PATTERN",
	DisableFlagsInUseLine: true,

	Short:   helpShort,
	Long:    helpLong,
	Example: helpExamples,

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("need exactly two arguments: the base URL and the pattern")
		}

		return cli.WithContext(func(ctx context.Context, _ *errgroup.Group) error {
			return run(ctx, &opts, args[0], args[1])
		})
	},
}

func run(ctx context.Context, opts *Options, baseURL, p string) error {
	opts.Request.BaseURL = baseURL

	req, err := opts.Request.Apply(pattern.Encode(p))
	if err != nil {
		return err
	}

	host, port, err := request.Target(req)
	if err != nil {
		return err
	}

	// remote server
	fmt.Printf("remote %v, port %v\n\n", host, port)

	if opts.ShowRequest {
		fmt.Println(header("request"))
		// print request with body
		buf, err := httputil.DumpRequestOut(req, true)
		if err != nil {
			return err
		}

		// be nice to the CLI user and append a newline if there isn't one yet
		if !bytes.HasSuffix(buf, []byte("\n")) {
			buf = append(buf, '\n')
		}

		_, err = os.Stdout.Write(buf)
		if err != nil {
			return err
		}
	}

	transport, err := response.NewTransport(opts.TransportOptions)
	if err != nil {
		return err
	}

	runner := response.NewRunner(transport, opts.Request, opts.Timeout)
	res := runner.Do(ctx, p)

	if opts.ShowRequest {
		// we only need the separator when request and response are both shown
		fmt.Println(header("response"))
	}

	if res.Error != nil {
		fmt.Printf("error: %v\n", res.Error)
		return nil
	}

	// print response
	_, err = os.Stdout.Write(res.RawHeader)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(res.RawBody)
	if err != nil {
		return err
	}

	// be nice to the CLI user and append a newline if there isn't one yet
	if !bytes.HasSuffix(res.RawBody, []byte("\n")) {
		fmt.Println()
	}

	fmt.Println(header(""))
	fmt.Println(reporter.FormatResponse(1, 1, res, ""))

	return nil
}
