package editor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"kartedit/log"
)

// A Report is the result of the verification of a rom.
type Report struct {
	Path  string
	Title string

	// ChecksumOK reports whether the stored checksum matches the image.
	ChecksumOK bool

	// Canonical reports whether the item probabilities are stored the way
	// kartedit would encode them.
	Canonical bool

	Err error
}

// Verify opens each rom and checks its item probabilities decode. Roms are
// verified concurrently, a report is returned for each path, in order.
func Verify(ctx context.Context, paths []string, cfg Config) []Report {
	reports := make([]Report, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			reports[i] = verify(ctx, path, cfg)
			return nil
		})
	}
	g.Wait()
	return reports
}

func verify(ctx context.Context, path string, cfg Config) Report {
	rep := Report{Path: path}
	if err := ctx.Err(); err != nil {
		rep.Err = err
		return rep
	}

	s, err := Open(path, cfg)
	if err != nil {
		log.ModEdit.WithField("path", path).Warnf("verify: %v", err)
		rep.Err = err
		return rep
	}

	rep.Title = s.ROM().Title()
	rep.ChecksumOK = s.ROM().Checksum() == s.ROM().ComputeChecksum()
	rep.Canonical, rep.Err = s.Canonical()
	return rep
}
