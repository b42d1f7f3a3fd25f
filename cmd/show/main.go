package show

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"net/http/httputil"
	"os"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/producer"
	"github.com/RedTeamPentesting/slotfuzz/request"
	"github.com/spf13/cobra"
)

// Options collect options for the command.
type Options struct {
	Request *request.Request // the template for the HTTP request
	Range   string
}

var opts Options

// AddCommand adds the command to c.
func AddCommand(c *cobra.Command) {
	c.AddCommand(cmd)

	fs := cmd.Flags()
	fs.SortFlags = false

	opts.Request = request.New("")
	request.AddFlags(opts.Request, fs)

	fs.StringVarP(&opts.Range, "range", "r", producer.DefaultRange.String(), "check slots against numbers `from-to`")
}

var cmd = &cobra.Command{
	Use:                   "show [options] BASEURL [PATTERN]",
	DisableFlagsInUseLine: true,

	Short:   helpShort,
	Long:    helpLong,
	Example: helpExamples,

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("base URL is missing")
		}

		if len(args) > 2 {
			return errors.New("too many arguments")
		}

		rng, err := producer.ParseRange(opts.Range)
		if err != nil {
			return err
		}

		var p string
		if len(args) == 2 {
			p = args[1]
		} else {
			values := pattern.Values(rng.First, rng.Last)
			p = producer.Generate(rand.New(rand.NewSource(time.Now().UnixNano())), values, 1)[0]
		}

		err = pattern.Validate(p, rng.First, rng.Last)
		if err != nil {
			fmt.Printf("warning: %v\n", err)
		}

		opts.Request.BaseURL = args[0]
		encoded := pattern.Encode(p)

		req, err := opts.Request.Apply(encoded)
		if err != nil {
			return err
		}

		host, port, err := request.Target(req)
		if err != nil {
			return err
		}

		fmt.Printf("pattern  %v\n", p)
		fmt.Printf("base64   %v\n", encoded)
		fmt.Printf("url      %v\n", opts.Request.URL(encoded))
		fmt.Printf("file     %v\n\n", pattern.ArtifactName(1, p))

		// remote server
		fmt.Printf("remote %v, port %v\n\n", host, port)

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
		return err
	},
}
