package fuzz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/cli"
	"github.com/RedTeamPentesting/slotfuzz/driver"
	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/producer"
	"github.com/RedTeamPentesting/slotfuzz/recorder"
	"github.com/RedTeamPentesting/slotfuzz/reporter"
	"github.com/RedTeamPentesting/slotfuzz/request"
	"github.com/RedTeamPentesting/slotfuzz/response"
	"github.com/fd0/termstatus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// DefaultArtifactDir is the directory the responses are saved to.
const DefaultArtifactDir = "curl"

// Options collect options for a run.
type Options struct {
	Range       string
	slotRange   producer.Range
	MaxPatterns int
	Seed        int64

	Delay             time.Duration
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxBodySize       int

	Output      string
	ArtifactDir string
	Logfile     string

	Yes bool

	Request *request.Request // the template for the HTTP request

	response.TransportOptions

	IPv4Only bool
	IPv6Only bool
}

var opts Options

// valid validates the options and returns an error if something is invalid.
func (opts *Options) valid() (err error) {
	opts.slotRange, err = producer.ParseRange(opts.Range)
	if err != nil {
		return err
	}

	if opts.MaxPatterns < 0 {
		return errors.New("invalid number of patterns")
	}

	if opts.Delay < 0 {
		return errors.New("delay must not be negative")
	}

	if opts.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if opts.RequestsPerSecond < 0 {
		return errors.New("requests per second must not be negative")
	}

	if opts.MaxBodySize <= 0 {
		return errors.New("invalid max body size")
	}

	if opts.ArtifactDir == "" {
		return errors.New("artifact dir must not be empty")
	}

	switch {
	case opts.IPv4Only && opts.IPv6Only:
		return fmt.Errorf("--ipv4-only and --ipv6-only cannot be used together")
	case opts.IPv4Only:
		opts.TransportOptions.Network = "tcp4"
	case opts.IPv6Only:
		opts.TransportOptions.Network = "tcp6"
	}

	return nil
}

var cmd = &cobra.Command{
	Use:                   "fuzz [options] BASEURL",
	DisableFlagsInUseLine: true,

	Short:   helpShort,
	Long:    helpLong,
	Example: helpExamples,

	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.WithContext(func(ctx context.Context, g *errgroup.Group) error {
			return run(ctx, g, &opts, args)
		})
	},
}

// AddCommand adds the 'fuzz' command to c.
func AddCommand(c *cobra.Command) {
	c.AddCommand(cmd)

	fs := cmd.Flags()
	fs.SortFlags = false

	fs.StringVarP(&opts.Range, "range", "r", producer.DefaultRange.String(), "use numbers `from-to` for each slot")
	fs.IntVarP(&opts.MaxPatterns, "max-patterns", "n", 0, "send at most `n` patterns (0: size of the pattern space)")
	fs.Int64Var(&opts.Seed, "seed", 0, "seed the random number generator with `n` (0: use the current time)")

	fs.DurationVar(&opts.Delay, "delay", driver.DefaultDelay, "pause for `duration` between requests")
	fs.Float64Var(&opts.RequestsPerSecond, "requests-per-second", 0, "do at most `n` requests per second (e.g. 0.5)")
	fs.DurationVar(&opts.Timeout, "timeout", response.DefaultTimeout, "abort requests after `duration`")
	fs.IntVar(&opts.MaxBodySize, "max-body-size", response.DefaultMaxBodySize/(1024*1024), "read at most `n` MiB from a returned response body")

	fs.StringVarP(&opts.Output, "output", "o", recorder.DefaultLogFile, "write the JSON results to `filename`")
	fs.StringVar(&opts.ArtifactDir, "artifact-dir", DefaultArtifactDir, "save responses to files in `dir`")
	fs.StringVar(&opts.Logfile, "logfile", "", "write copy of printed messages to `filename`")
	fs.BoolVarP(&opts.Yes, "yes", "y", false, "start without asking for confirmation")

	// add all options to define a request
	opts.Request = request.New("")
	request.AddFlags(opts.Request, fs)

	// add transport options
	response.AddTransportFlags(fs, &opts.TransportOptions)

	fs.BoolVar(&opts.IPv4Only, "ipv4-only", false, "only connect to target host via IPv4")
	fs.BoolVar(&opts.IPv6Only, "ipv6-only", false, "only connect to target host via IPv6")
}

func setupTerminal(g *errgroup.Group, maxFrameRate uint, logfile string) (term cli.Terminal, cleanup func(), err error) {
	ctx, cancel := context.WithCancel(context.Background())

	statusTerm := termstatus.New(os.Stdout, os.Stderr, false)
	if maxFrameRate != 0 {
		statusTerm.MaxFrameRate = maxFrameRate
	}

	term = statusTerm

	if logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, cancel, err
		}

		fmt.Fprintln(f, strings.Join(os.Args, " "))

		// write copies of messages to logfile
		term = &cli.LogTerminal{
			Terminal: statusTerm,
			Writer:   f,
		}

		cleanup = func() {
			cancel()
			_ = f.Close()
		}
	} else {
		cleanup = cancel
	}

	// make sure error messages logged via the log package are printed nicely
	w := cli.NewStdioWrapper(term)
	log.SetOutput(w.Stderr())
	log.SetFlags(0)

	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		term.Run(ctx)
		return nil
	})

	// wait until the terminal has flushed all messages
	stop := cleanup
	cleanup = func() {
		stop()
		<-done
		log.SetOutput(os.Stderr)
	}

	return term, cleanup, nil
}

func banner(opts *Options, baseURL string, total int) []string {
	values := pattern.Values(opts.slotRange.First, opts.slotRange.Last)
	slots := make([]string, pattern.Slots)
	for i := range slots {
		slots[i] = "NUM"
	}

	lines := []string{
		reporter.Bold("Target:") + "                 " + baseURL,
		reporter.Bold("Pattern:") + "                " + pattern.Join(slots) +
			fmt.Sprintf(" where NUM = EMPTY or %v", opts.slotRange),
		reporter.Bold("Possible patterns:") + fmt.Sprintf("       %d^%d = %d", len(values), pattern.Slots, pattern.SpaceSize(len(values))),
		reporter.Bold("Patterns to send:") + fmt.Sprintf("        %d", total),
		reporter.Bold("Delay between requests:") + fmt.Sprintf("  %v", opts.Delay),
		reporter.Bold("Responses saved to:") + "      " + strings.TrimSuffix(opts.ArtifactDir, "/") + "/",
	}

	return lines
}

func run(ctx context.Context, g *errgroup.Group, opts *Options, args []string) error {
	// make sure the options and arguments are valid
	if len(args) == 0 {
		return errors.New("last argument needs to be the base URL")
	}

	if len(args) > 1 {
		return errors.New("more than one base URL specified")
	}

	err := opts.valid()
	if err != nil {
		return err
	}

	opts.Request.BaseURL = args[0]

	// check that requests can be built for the base URL
	_, err = opts.Request.Apply(pattern.Encode(pattern.Join(make([]string, pattern.Slots))))
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	var maxFrameRate uint
	if s, ok := os.LookupEnv("SLOTFUZZ_PROGRESS_FPS"); ok {
		rate, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("parse $SLOTFUZZ_PROGRESS_FPS: %w", err)
		}
		maxFrameRate = uint(rate)
	}

	transport, err := response.NewTransport(opts.TransportOptions)
	if err != nil {
		return err
	}

	runner := response.NewRunner(transport, opts.Request, opts.Timeout)
	runner.MaxBodySize = opts.MaxBodySize * 1024 * 1024

	artifacts, err := recorder.NewArtifacts(opts.ArtifactDir)
	if err != nil {
		return err
	}

	if artifacts.Created {
		fmt.Printf("created folder: %v\n", opts.ArtifactDir)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := producer.NewRandom(rand.New(rand.NewSource(seed)), opts.slotRange, opts.MaxPatterns)

	rn := driver.NewRun(opts.ArtifactDir)

	for _, line := range banner(opts, opts.Request.BaseURL, src.Count()) {
		fmt.Println(line)
	}
	fmt.Println()

	if !opts.Yes {
		err = cli.Confirm(ctx, os.Stdin, os.Stdout, "Press Enter to start fuzzing...")
		if errors.Is(err, cli.ErrInterrupted) {
			fmt.Println("fuzzing cancelled by user")
			return nil
		}

		if err != nil {
			return err
		}
	}

	term, cleanup, err := setupTerminal(g, maxFrameRate, opts.Logfile)
	defer cleanup()
	if err != nil {
		return err
	}

	term.Printf("%s %d (use --seed to repeat the run)\n\n", reporter.Bold("Seed:"), seed)

	// start the producer
	producerCtx, producerCancel := context.WithCancel(ctx)
	defer producerCancel()

	ch := make(chan string)
	countCh := make(chan int, 1)
	g.Go(func() error {
		return src.Yield(producerCtx, ch, countCh)
	})

	var patterns <-chan string = ch

	// limit the throughput (if requested)
	if opts.RequestsPerSecond > 0 {
		patterns = producer.Limit(producerCtx, opts.RequestsPerSecond, patterns)
	}

	rep := reporter.New(term, src.Count())
	d := driver.New(runner, artifacts, rep, opts.Delay)
	d.Run(ctx, rn, patterns)
	producerCancel()

	rep.Done()
	rn.Finish(opts.Output, term)

	return nil
}
