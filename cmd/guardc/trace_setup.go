package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"guardc/internal/trace"
)

// traceFlags are the raw values of the persistent --trace* flags.
type traceFlags struct {
	output, level, mode, format string
	ringSize                    int
	modeSet                     bool
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var tf traceFlags
	var err error
	for name, dst := range map[string]*string{
		"trace":        &tf.output,
		"trace-level":  &tf.level,
		"trace-mode":   &tf.mode,
		"trace-format": &tf.format,
	} {
		if *dst, err = pf.GetString(name); err != nil {
			return tf, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if tf.ringSize, err = pf.GetInt("trace-ring-size"); err != nil {
		return tf, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	tf.modeSet = pf.Changed("trace-mode")
	return tf, nil
}

// config turns the flags into a tracer configuration. --trace with a file
// implies at least LevelPhase, and stream mode unless --trace-mode is given.
func (tf traceFlags) config() (trace.Config, error) {
	cfg := trace.Config{OutputPath: tf.output, RingSize: tf.ringSize}
	var err error
	if cfg.Level, err = trace.ParseLevel(tf.level); err != nil {
		return cfg, fmt.Errorf("invalid trace level: %w", err)
	}
	if cfg.Level == trace.LevelOff && tf.output != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(tf.mode); err != nil {
		return cfg, fmt.Errorf("invalid trace mode: %w", err)
	}
	if tf.output != "" && !tf.modeSet {
		cfg.Mode = trace.ModeStream
	}
	cfg.Format, err = trace.ParseFormat(tf.format)
	return cfg, err
}

// setupTracing installs the tracer in the command context and returns the
// function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := tf.config()
	if err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	return func() {
		if err := errors.Join(tracer.Flush(), tracer.Close()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

// dumpTraceOnPanic prints the ring buffer of the active tracer and re-panics.
// Must be deferred directly.
func dumpTraceOnPanic(cmd *cobra.Command) {
	r := recover()
	if r == nil {
		return
	}
	tracer := trace.FromContext(cmd.Context())
	fmt.Fprintf(os.Stderr, "guardc: panic: %v\n", r)
	if ok, err := trace.DumpRing(tracer, os.Stderr, trace.FormatText); ok {
		if err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "trace: no ring buffer (use --trace-level and --trace-mode ring|both)")
	}
	panic(r)
}
