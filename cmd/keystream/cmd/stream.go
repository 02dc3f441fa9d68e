package cmd

import (
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/spf13/pflag"
	"github.com/uber-go/tally"
	"github.com/uber-go/tally/multi"
	"go.uber.org/multierr"

	"github.com/mmcloughlin/keystream"
	"github.com/mmcloughlin/keystream/check"
	"github.com/mmcloughlin/keystream/log"
	"github.com/mmcloughlin/keystream/meta"
	"github.com/mmcloughlin/keystream/telemetry"
	"github.com/mmcloughlin/keystream/telemetry/expvar"
	"github.com/mmcloughlin/keystream/telemetry/logging"
)

var (
	inputPath     string
	outputPath    string
	logfile       string
	telemetryAddr string
)

// streamFlags attaches the flags shared by the encrypt and decrypt commands.
func streamFlags(f *pflag.FlagSet) {
	f.StringVarP(&inputPath, "in", "i", "-", "input file (- for stdin)")
	f.StringVarP(&outputPath, "out", "o", "-", "output file (- for stdout)")
	f.StringVarP(&logfile, "logfile", "l", "keystream.json", "log file")
	f.StringVarP(&telemetryAddr, "telemetry", "t", "", "telemetry address")
	Register(f, profileArgs)
}

func logger(logfile string) (log.Logger, error) {
	base := log15.New()
	fh, err := log15.FileHandler(logfile, log15.JsonFormat())
	if err != nil {
		return nil, err
	}
	base.SetHandler(log15.MultiHandler(
		log15.LvlFilterHandler(log15.LvlInfo,
			log15.StreamHandler(os.Stderr, log15.TerminalFormat()),
		),
		fh,
	))
	return log.NewLog15(base), nil
}

func metrics(l log.Logger) (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix: "keystream",
		Tags:   map[string]string{},
		CachedReporter: multi.NewMultiCachedReporter(
			expvar.NewReporter(),
			logging.NewReporter(l),
		),
	}, 1*time.Second)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return ioutil.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// stream runs the transform pipeline shared by encrypt and decrypt.
func stream(op string) (err error) {
	l, err := logger(logfile)
	if err != nil {
		return err
	}
	l = log.ForComponent(l, op)
	l.Info("starting", "platform", meta.Build.String())

	p, err := profileArgs.Profile()
	if err != nil {
		return err
	}
	l = log.ForProfile(l, p.Name)

	scope, closer := metrics(l)
	defer check.Close(l, closer)

	if telemetryAddr != "" {
		go telemetry.Serve(telemetryAddr, l)
		go telemetry.ReportRuntime(scope, 10*time.Second)
	}

	sessions := telemetry.NewResourceMetric(scope, l, "sessions")
	c, err := p.Start()
	if err != nil {
		return err
	}
	sessions.Alloc()
	defer func() {
		sessions.Free()
		if cerr := c.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
		}
	}()

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer check.Close(l, in)

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	read := telemetry.NewBandwidth(scope.Counter("read_bytes"))
	written := telemetry.NewBandwidth(scope.Counter("write_bytes"))

	n, err := io.Copy(written.WrapWriter(out), keystream.NewReader(c, read.WrapReader(in)))
	if err != nil {
		log.Err(l, err, "stream failed")
		return err
	}

	scope.Gauge("blocks").Update(float64(c.Blocks()))
	l.Info("complete", "bytes", n, "blocks", c.Blocks())
	return nil
}
