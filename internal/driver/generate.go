// Package driver turns a loaded manifest into Java source files on disk:
// it renders each class through the emission engine, caches renderings by
// content digest, and writes output files atomically.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"quill/internal/java"
	"quill/internal/manifest"
)

// Options controls one generation run.
type Options struct {
	Jobs   int        // parallel class limit; <=0 means GOMAXPROCS
	Force  bool       // ignore cached renderings
	DryRun bool       // render but do not touch the output tree
	Cache  *DiskCache // nil disables caching
}

// Result describes one generated class.
type Result struct {
	ClassName string
	Package   string
	Path      string // output path, also reported for dry runs
	Cached    bool
	Bytes     int
}

// Generate renders every class of the manifest. Distinct classes render in
// parallel; each rendering's two passes stay sequential inside one
// goroutine. Result order matches manifest order.
func Generate(ctx context.Context, m *manifest.Manifest, opts Options) ([]Result, error) {
	cfg, err := EngineConfig(m.Config.Generate)
	if err != nil {
		return nil, err
	}

	classes := m.Config.Classes
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slots are per-goroutine, no mutex needed.
	results := make([]Result, len(classes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(classes)))
	for i, cc := range classes {
		i, cc := i, cc
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := generateOne(cfg, m, cc, opts)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", cc.Package, cc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func generateOne(cfg java.Config, m *manifest.Manifest, cc manifest.ClassConfig, opts Options) (Result, error) {
	key, err := digestOf(cacheSchemaVersion, cfg, cc)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ClassName: cc.Name,
		Package:   cc.Package,
		Path:      OutputPath(m, cc),
	}

	var text string
	var payload Payload
	if !opts.Force {
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			return Result{}, err
		}
		if hit {
			text = payload.Text
			res.Cached = true
		}
	}
	if text == "" {
		file, err := BuildClass(cfg, cc)
		if err != nil {
			return Result{}, err
		}
		text, err = file.Render()
		if err != nil {
			return Result{}, err
		}
		fieldCount, err := safecast.Conv[uint16](len(cc.Fields))
		if err != nil {
			return Result{}, fmt.Errorf("too many fields: %w", err)
		}
		put := &Payload{
			Schema:     cacheSchemaVersion,
			ClassName:  cc.Name,
			Package:    cc.Package,
			FileName:   cc.Name + ".java",
			FieldCount: fieldCount,
			Text:       text,
		}
		if err := opts.Cache.Put(key, put); err != nil {
			return Result{}, err
		}
	}
	res.Bytes = len(text)

	if opts.DryRun {
		return res, nil
	}
	if err := writeFileAtomic(res.Path, []byte(text)); err != nil {
		return Result{}, err
	}
	return res, nil
}

// OutputPath maps a class to its file under the manifest's output root,
// one directory per package segment.
func OutputPath(m *manifest.Manifest, cc manifest.ClassConfig) string {
	segments := strings.Split(cc.Package, ".")
	return filepath.Join(append([]string{m.OutDir()}, append(segments, cc.Name+".java")...)...)
}

// Preview renders the named class to text without writing anything.
func Preview(m *manifest.Manifest, className string) (string, error) {
	cfg, err := EngineConfig(m.Config.Generate)
	if err != nil {
		return "", err
	}
	for _, cc := range m.Config.Classes {
		if cc.Name != className {
			continue
		}
		file, err := BuildClass(cfg, cc)
		if err != nil {
			return "", err
		}
		return file.Render()
	}
	return "", fmt.Errorf("class %q is not in the manifest", className)
}

// writeFileAtomic writes via a temp file and rename, so readers never see
// a half-written compilation unit.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
