// Package ioxml finds sample XML files and parses them concurrently.
package ioxml

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"aqwari.net/xml/xmltree"
	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
)

// Document is a parsed sample file.
type Document struct {
	// Index is the position of the document in the batch.
	Index int
	Path  string
	Size  int64
	Root  *xmltree.Element
}

// Collect expands paths into a list of files. Files are kept as given,
// directories are walked for files with the .xml extension. The result is
// sorted and has no duplicates, so document indices are stable between
// runs.
func Collect(paths []string) ([]string, error) {
	var res []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, CollectFilesError(p, err)
		}
		if !info.IsDir() {
			res = append(res, filepath.Clean(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
				res = append(res, path)
			}
			return nil
		})
		if err != nil {
			return nil, CollectFilesError(p, err)
		}
	}
	if len(res) == 0 {
		return nil, NoInputFilesError(paths)
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}

// Load reads and parses files with up to jobs workers. The documents are
// returned in the order of files. The first failure cancels the rest.
func Load(
	ctx context.Context,
	files []string,
	jobs int,
	progress bool,
) ([]*Document, error) {
	res := make([]*Document, len(files))

	var bar *pb.ProgressBar
	if progress {
		bar = pb.Full.Start(len(files))
		bar.Set("prefix", "Parsing documents: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, f := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := load(f)
			if err != nil {
				return err
			}
			doc.Index = i
			res[i] = doc
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Parsed documents", "count", len(res))
	return res, nil
}

func load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, ParseXMLError(path, err)
	}
	return &Document{Path: path, Size: int64(len(data)), Root: root}, nil
}
