package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/evalphobia/logrus_sentry"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/timzifer/chunkqueue/internal/config"
	"github.com/timzifer/chunkqueue/internal/core"
	"github.com/timzifer/chunkqueue/internal/telemetry"
)

func flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a toml configuration file",
		},
		cli.StringFlag{
			Name:  "mode",
			Usage: "Unit frames are counted in (bytes|text)",
		},
		cli.IntFlag{
			Name:  "frame",
			Usage: "Units per frame",
		},
		cli.IntFlag{
			Name:  "read-size",
			Usage: "Bytes requested from the input per read",
		},
		cli.StringFlag{
			Name:  "separator",
			Usage: "Written after every frame",
		},
		cli.BoolFlag{
			Name:  "no-partial",
			Usage: "Drop the final frame when it is shorter than --frame",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Logging level (panic|fatal|error|warn|info|debug|trace)",
		},
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "chunkq"
	app.Usage = "re-frame a stream into fixed-size byte or rune frames"
	app.ArgsUsage = "[file...]"
	app.Version = "0.1.0"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = flags()
	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		log, err := newLogger(cfg, stderr)
		if err != nil {
			return err
		}

		if err := run(c, cfg, log, stdin, stdout); err != nil {
			log.WithError(err).Error("chunkq failed")
			return err
		}
		return nil
	}
	return app
}

// loadConfig layers flags over the config file over the defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("mode") {
		cfg.Mode = config.Mode(c.String("mode"))
	}
	if c.IsSet("frame") {
		cfg.FrameSize = c.Int("frame")
	}
	if c.IsSet("read-size") {
		cfg.ReadSize = c.Int("read-size")
	}
	if c.IsSet("separator") {
		cfg.Separator = c.String("separator")
	}
	if c.Bool("no-partial") {
		cfg.Partial = false
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, out io.Writer) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.Out = out
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	log.SetLevel(level)

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, errors.Wrap(err, "sentry hook")
		}
		log.AddHook(hook)
	}

	return log, nil
}

func run(c *cli.Context, cfg config.Config, log *logrus.Logger, stdin io.Reader, stdout io.Writer) error {
	src, closeAll, err := openInputs(c.Args(), stdin, log)
	if err != nil {
		return err
	}
	defer closeAll()

	r, err := core.NewRechunker(cfg, core.WithLogger(log))
	if err != nil {
		return err
	}

	out := bufio.NewWriter(stdout)
	sep := []byte(cfg.Separator)
	err = r.Run(context.Background(), src, func(frame []byte) error {
		if _, err := out.Write(frame); err != nil {
			return err
		}
		_, err := out.Write(sep)
		return err
	})
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return errors.Wrap(err, "flush output")
	}

	s := telemetry.DefaultConsumeMetrics().Snapshot()
	log.WithFields(logrus.Fields{
		"frames":  r.Frames(),
		"units":   s.Units,
		"drained": s.Drained,
		"average": s.Average,
	}).Info("done")
	return nil
}

// openInputs concatenates the named files, or returns stdin when there are none.
func openInputs(names []string, stdin io.Reader, log logrus.FieldLogger) (io.Reader, func(), error) {
	if len(names) == 0 {
		if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			log.Warn("reading from a terminal, end input with Ctrl-D")
		}
		return stdin, func() {}, nil
	}

	files := make([]*os.File, 0, len(names))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	readers := make([]io.Reader, 0, len(names))
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrap(err, "open input")
		}
		files = append(files, f)
		readers = append(readers, f)
	}

	return io.MultiReader(readers...), closeAll, nil
}
