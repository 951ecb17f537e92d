package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/viant/portal"
)

// Version of the portal binary.
var Version = "0.1.0"

// Service runs portal commands.
type Service struct {
	ctx     context.Context
	out     io.Writer
	options Options
	extra   []portal.Option
	logger  zerolog.Logger
}

// New creates a service writing command output to out; extra options are
// passed to every portal.NewClient call.
func New(out io.Writer, extra ...portal.Option) *Service {
	ret := &Service{ctx: context.Background(), out: out, extra: extra}
	ret.options.Login.service = ret
	ret.options.Logout.service = ret
	ret.options.Whoami.service = ret
	ret.options.Status.service = ret
	ret.options.Get.service = ret
	ret.options.Version.service = ret
	return ret
}

// Run parses args into a command and executes it.
func Run(args []string) error {
	return New(os.Stdout).Run(context.Background(), args)
}

// Run parses args into a command and executes it.
func (s *Service) Run(ctx context.Context, args []string) error {
	s.ctx = ctx
	parser := flags.NewParser(&s.options, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		s.logger = newLogger(s.options.Verbose)
		if command == nil {
			return nil
		}
		return command.Execute(args)
	}
	_, err := parser.ParseArgs(args)
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		_, _ = fmt.Fprintln(s.out, flagsErr.Message)
		return nil
	}
	return err
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

// clientOptions loads options; credentials persist in an encrypted store
// under the home directory unless configured otherwise.
func (s *Service) clientOptions() (*portal.ClientOptions, error) {
	ret := &portal.ClientOptions{}
	if home, err := os.UserHomeDir(); err == nil {
		ret.Auth.Store = portal.StoreSecure
		ret.Auth.StoreURL = "file://" + path.Join(home, ".portal", "credentials")
	}
	if err := ret.Load(s.ctx, s.options.Config); err != nil {
		return nil, err
	}
	if s.options.BaseURL != "" {
		ret.BaseURL = s.options.BaseURL
	}
	return ret, nil
}

func (s *Service) portal() (*portal.Portal, *portal.ClientOptions, error) {
	options, err := s.clientOptions()
	if err != nil {
		return nil, nil, err
	}
	opts := append([]portal.Option{portal.WithLogger(s.logger)}, s.extra...)
	p, err := portal.NewClient(options, opts...)
	if err != nil {
		return nil, nil, err
	}
	return p, options, nil
}

func (s *Service) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
