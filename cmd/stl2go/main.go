// Command stl2go converts an ASCII STL model into a compiled-in mesh table.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tiny3d/sparkos/mesh/stl"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input ASCII STL file.")
		outPath = flag.String("out", "", "Output Go file.")
		name    = flag.String("name", "", "Exported model name (default: derived from the input file).")
		pkg     = flag.String("pkg", "mesh", "Package clause of the generated file.")
		scale   = flag.Float64("scale", 1.0, "Scale ratio applied to coordinates.")
		normals = flag.Bool("normals", false, "Emit per-face normals.")
		yes     = flag.Bool("y", false, "Overwrite the output file if it exists.")
		verbose = flag.Bool("v", false, "Verbose output.")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fatalf("usage: stl2go -in model.stl -out model.go [-name Model] [-pkg mesh] [-scale 1.0] [-normals] [-y] [-v]")
	}

	// A zero Options.Scale means 1, so an explicit -scale 0 is caught here.
	if err := checkScale(*scale); err != nil {
		fatalf("stl2go: %v", err)
	}

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()

	opts := Options{
		Name:    *name,
		Package: *pkg,
		Scale:   *scale,
		Normals: *normals,
		Source:  filepath.Base(*inPath),
	}
	if opts.Name == "" {
		opts.Name = exportedName(*inPath)
	}
	if err := convert(log, *inPath, *outPath, *yes, opts); err != nil {
		fatalf("stl2go: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

var errSameFile = errors.New("input and output files are the same")

func convert(log *zap.Logger, inPath, outPath string, overwrite bool, opts Options) error {
	absIn, _ := filepath.Abs(inPath)
	absOut, _ := filepath.Abs(outPath)
	if absIn == absOut {
		return errSameFile
	}
	if !overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists (use -y to overwrite)", outPath)
		}
	}

	log.Info("parsing", zap.String("in", inPath), zap.String("out", outPath))
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	solid, err := stl.Parse(in)
	if err != nil {
		return err
	}
	log.Info("parsed",
		zap.Int("vertices", len(solid.Vertices)),
		zap.Int("triangles", len(solid.Faces)),
		zap.Int("normals", len(solid.Normals)),
	)
	for i, v := range solid.Vertices {
		log.Debug("vertex", zap.Int("i", i), zap.Float64s("xyz", v[:]))
	}
	for i, f := range solid.Faces {
		log.Debug("face", zap.Int("i", i), zap.Ints("idx", f[:]))
	}

	src, err := Generate(solid, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return err
	}
	log.Info("done", zap.String("out", outPath), zap.Int("bytes", len(src)))
	return nil
}
