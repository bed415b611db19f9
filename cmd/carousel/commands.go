package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"carousel/config"
	"carousel/editor"
	"carousel/export"
	"carousel/persist"
	"carousel/state"
	"carousel/store"
)

// source is content document with its slide markup files.
type source struct {
	doc     *persist.Document
	names   []string
	markups [][]byte
}

// slideFiles returns slide markup files of the directory in natural order.
func slideFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "slide-*.xhtml"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no slide markup files found in '%s'", dir)
	}
	sort.Sort(natural.StringSlice(matches))
	return matches, nil
}

func loadSource(docPath, slidesDir string) (*source, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open content document: %w", err)
	}
	defer f.Close()

	doc, err := persist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("unable to read content document '%s': %w", docPath, err)
	}
	names, err := slideFiles(slidesDir)
	if err != nil {
		return nil, err
	}
	src := &source{doc: doc, names: names}
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("unable to read slide markup: %w", err)
		}
		src.markups = append(src.markups, data)
	}
	return src, nil
}

// openEditor loads sources named by first two arguments into new editor.
func openEditor(ctx context.Context, cmd *cli.Command) (*editor.Editor, *source, error) {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() < 2 {
		return nil, nil, errors.New("content document and slides directory are required")
	}
	src, err := loadSource(cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return nil, nil, err
	}

	ed := editor.New(env.Cfg.Editor.Options(), nil, env.Log)
	if err := ed.Open(ctx, src.doc, src.markups); err != nil {
		return nil, nil, fmt.Errorf("unable to open carousel: %w", err)
	}
	env.Log.Debug("Carousel loaded", zap.String("id", src.doc.ID), zap.Int("slides", len(src.markups)))
	if env.Rpt != nil {
		env.Rpt.StoreData("editor/open.txt", []byte(ed.Dump()))
	}
	return ed, src, nil
}

func closeEditor(ctx context.Context, ed *editor.Editor, err error) error {
	env := state.EnvFromContext(ctx)
	if env.Rpt != nil {
		env.Rpt.StoreData("editor/close.txt", []byte(ed.Dump()))
	}
	return multierr.Append(err, ed.Close())
}

func createFile(name string, overwrite bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create '%s': %w", name, err)
	}
	return f, nil
}

func runApply(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	env.Overwrite = cmd.Bool("overwrite")

	ed, src, err := openEditor(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = closeEditor(ctx, ed, err) }()

	dst := cmd.Args().Get(2)
	if dst == "" {
		dst = cmd.Args().Get(1)
		env.Overwrite = true
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("unable to create destination: %w", err)
	}

	frames, err := ed.Snapshot()
	if err != nil {
		return err
	}
	for i, frame := range frames {
		name := filepath.Join(dst, filepath.Base(src.names[i]))
		f, err := createFile(name, env.Overwrite)
		if err != nil {
			return err
		}
		_, err = f.Write(frame.Markup)
		if er := f.Close(); err == nil {
			err = er
		}
		if err != nil {
			return fmt.Errorf("unable to write '%s': %w", name, err)
		}
		env.Log.Debug("Slide written", zap.String("file", name))
	}

	if cmd.Bool("dump") {
		fmt.Fprint(os.Stdout, ed.Dump())
	}
	env.Log.Info("Styles applied", zap.Int("slides", len(frames)), zap.String("destination", dst))
	return nil
}

func openDrafts(ctx context.Context) (*store.Store, error) {
	env := state.EnvFromContext(ctx)
	drafts, err := store.Open(env.Cfg.Store.Path, env.Log)
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func runSave(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	ed, _, err := openEditor(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = closeEditor(ctx, ed, err) }()

	drafts, err := openDrafts(ctx)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, drafts.Close()) }()

	doc, err := ed.Save(ctx, drafts)
	if err != nil {
		return err
	}
	env.Log.Info("Draft saved", zap.String("id", doc.ID), zap.String("store", env.Cfg.Store.Path))
	return nil
}

func runDrafts(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	drafts, err := openDrafts(ctx)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, drafts.Close()) }()

	id := cmd.Args().Get(0)
	if id == "" {
		list, err := drafts.List(ctx)
		if err != nil {
			return err
		}
		for _, d := range list {
			fmt.Fprintf(os.Stdout, "%s\t%s\n", d.ID, d.Updated.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	doc, err := drafts.Load(ctx, id)
	if err != nil {
		return err
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	if dst := cmd.Args().Get(1); dst != "" {
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("unable to write draft: %w", err)
		}
		env.Log.Info("Draft extracted", zap.String("id", id), zap.String("file", dst))
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// bundleName derives bundle file name from carousel id or document name.
func bundleName(doc *persist.Document, docPath string) string {
	base := doc.ID
	if strings.TrimSpace(base) == "" {
		base = strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	}
	return config.CleanFileName(base) + ".zip"
}

func runExport(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	env.Overwrite = cmd.Bool("overwrite")

	ed, src, err := openEditor(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = closeEditor(ctx, ed, err) }()

	rasterizers := export.Chain{export.SVGRasterizer{DeviceScale: env.Cfg.Export.DeviceScale}}
	if !cmd.Bool("no-browser") {
		chrome, err := export.NewChromeRasterizer(ctx, env.Cfg.Export.ChromeOptions(), env.Log)
		if err != nil {
			return err
		}
		rasterizers = append(rasterizers, chrome)
	}
	defer func() { err = multierr.Append(err, rasterizers.Close()) }()

	name := cmd.Args().Get(2)
	if name == "" {
		name = bundleName(src.doc, cmd.Args().Get(0))
	}
	out, err := createFile(name, env.Overwrite)
	if err != nil {
		return err
	}

	x, err := export.New(rasterizers, out, export.Options{
		Carousel:     src.doc.ID,
		Encode:       env.Cfg.Export.EncodeOptions(),
		NameTemplate: env.Cfg.Export.NameTemplate,
		Parallel:     env.Cfg.Export.Parallel,
	}, env.Log)
	if err == nil {
		err = ed.Export(ctx, x)
	}
	if er := out.Close(); err == nil {
		err = er
	}
	if err != nil {
		if er := os.Remove(name); er != nil {
			env.Log.Warn("Unable to remove incomplete bundle", zap.String("file", name), zap.Error(er))
		}
		return err
	}
	env.Log.Info("Carousel exported", zap.String("bundle", name))
	return nil
}
