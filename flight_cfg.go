package main

import (
	"fmt"
	"os"
	"time"

	"flight_cfg/cli"
	"flight_cfg/comments"
	"flight_cfg/process"
	"flight_cfg/settings"
	"flight_cfg/util/logger"
	"flight_cfg/util/tw"

	"github.com/adampresley/sigint"
	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

func main() {
	// Init logger
	log := logger.New(logrus.InfoLevel)

	// Parse command line arguments
	log.Debug("Parsing command line arguments")
	flags, err := cli.Parse()
	if flags.Version {
		fmt.Println("v1.0.0")
		os.Exit(0)
	}
	if cli.IsErrOfType(err, goFlags.ErrHelp) {
		// Help message will be prined by go-flags
		os.Exit(0)
	}
	if err != nil {
		log.Panic(err)
	}
	log.SetLevel(flags.LogLevel)

	// Read program settings
	set, isNewSet, err := settings.Init(log, flags.SettingsPath)
	if err != nil {
		log.Panic(err)
	}
	if isNewSet {
		log.Infof("New settings are written to %v, please verify them and start this program again", flags.SettingsPath)
		os.Exit(0)
	}
	set, err = applyFlags(set, flags)
	if err != nil {
		log.Panic(err)
	}

	msg, err := process.NewMessages(log, set.General.LocalesDir, set.General.Language)
	if err != nil {
		log.Panic(err)
	}
	if len(flags.Inputs) == 0 {
		log.Warn(msg.Text(msg.NoInputs))
		return
	}
	repo := process.NewRepo(log, tw.New(), set, msg)

	switch {
	case flags.Check:
		if failed := repo.Report(repo.CheckAll(flags.Inputs)); failed > 0 {
			os.Exit(1)
		}
	case flags.List:
		for _, inp := range flags.Inputs {
			if err := repo.List(inp); err != nil {
				log.Panic(err)
			}
		}
	default:
		jobs, err := repo.Jobs(flags.Inputs, flags.OutputDir)
		if err != nil {
			log.Panic(err)
		}
		jobs = repo.Confirm(jobs, flags.Yes, os.Stdin, os.Stderr)
		edits := process.Edits{Set: flags.Set, Comment: flags.Comment}
		run := func() int {
			return repo.Report(repo.Run(jobs, edits))
		}
		if flags.Watch {
			watch(log, msg, set.Watch.Interval, len(jobs), func() { run() })
			return
		}
		if failed := run(); failed > 0 {
			os.Exit(1)
		}
	}
}

// applyFlags returns <set> with format settings overridden by command line <flags>
func applyFlags(set settings.Root, flags cli.Flags) (settings.Root, error) {
	if flags.CommentFormat != "" {
		format, err := comments.ParseFormat(flags.CommentFormat)
		if err != nil {
			return set, errors.Wrap(err, "Apply command line arguments")
		}
		set.Format.CommentFormat = format
	}
	if flags.Indent != 0 {
		if flags.Indent < 2 || flags.Indent > 9 {
			err := settings.BadValueError{Field: "--indent", Reason: "should be from 2 to 9"}
			return set, errors.Wrap(err, "Apply command line arguments")
		}
		set.Format.Indent = flags.Indent
	}
	return set, nil
}

// watch calls <run> every <interval> until interrupted by the user
func watch(log *logrus.Logger, msg *process.Messages, interval time.Duration, count int, run func()) {
	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()
	if _, err := scheduler.Every(interval).Do(run); err != nil {
		log.Panic(errors.Wrap(err, "Schedule processing"))
	}
	sigint.ListenForSIGINT(func() {
		log.Info(msg.Text(msg.WatchStopped))
		scheduler.Stop()
	})
	for _, line := range msg.Lines(msg.WatchStarted, "count", count, "interval", interval) {
		log.Info(line)
	}
	scheduler.StartBlocking()
}
