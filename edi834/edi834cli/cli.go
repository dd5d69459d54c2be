package edi834cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CMSgov/edi834-app/edi834/assembler"
	"github.com/CMSgov/edi834-app/edi834/constants"
	"github.com/CMSgov/edi834-app/edi834/database"
	"github.com/CMSgov/edi834-app/edi834/export"
	"github.com/CMSgov/edi834-app/edi834/importer"
	"github.com/CMSgov/edi834-app/edi834/loader"
	"github.com/CMSgov/edi834-app/edi834/metrics"
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/CMSgov/edi834-app/edi834/models/postgres"
	"github.com/CMSgov/edi834-app/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// App Name and usage.  Edit them here to prevent breaking tests
const Name = "edi834"
const Usage = "EDI 834 benefit enrollment parser CLI"

// openRepository connects to the enrollment database. Replaced in tests.
var openRepository = func(ctx context.Context) (models.Store, func(), error) {
	cfg, err := database.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not connect to the enrollment database")
	}
	return postgres.NewRepository(db), func() { db.Close() }, nil
}

func GetApp() *cli.App {
	return setUpApp()
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = Name
	app.Usage = Usage
	app.Version = constants.Version

	var timer metrics.Timer
	app.Before = func(c *cli.Context) error {
		timer = metrics.NewTimer(log.CLI)
		return nil
	}
	app.After = func(c *cli.Context) error {
		if timer != nil {
			timer.Close()
		}
		return nil
	}
	ctx := func() context.Context {
		if timer == nil {
			return context.Background()
		}
		return metrics.WithTimer(context.Background(), timer)
	}

	var filePath, outPath, outDir string
	var strict bool
	var formats cli.StringSlice
	app.Commands = []cli.Command{
		{
			Name:     "split-segments",
			Category: "Inspection",
			Usage:    "Split an EDI 834 file into one segment per line",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Path or s3:// URI of the EDI 834 file",
					Destination: &filePath,
				},
				cli.StringFlag{
					Name:        "out",
					Usage:       "File to write segments to (default: stdout)",
					Destination: &outPath,
				},
			},
			Action: func(c *cli.Context) error {
				if filePath == "" {
					return errors.New("file path (--file) must be provided")
				}
				segments, err := splitSegments(ctx(), filePath)
				if err != nil {
					return err
				}
				if outPath == "" {
					for _, s := range segments {
						fmt.Fprintln(app.Writer, s)
					}
					return nil
				}
				if err := loader.WriteSegments(outPath, segments); err != nil {
					return err
				}
				fmt.Fprintf(app.Writer, "Wrote %d segments to %s\n", len(segments), outPath)
				return nil
			},
		},
		{
			Name:     "validate",
			Category: "Inspection",
			Usage:    "Parse an EDI 834 file and report its member records and notices",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Path or s3:// URI of the EDI 834 file",
					Destination: &filePath,
				},
				cli.BoolFlag{
					Name:        "strict",
					Usage:       "Fail when any member data notice is reported",
					Destination: &strict,
				},
			},
			Action: func(c *cli.Context) error {
				if filePath == "" {
					return errors.New("file path (--file) must be provided")
				}
				return validate(ctx(), app, filePath, strict)
			},
		},
		{
			Name:     "import",
			Category: "Data import",
			Usage:    "Parse an EDI 834 file and export its member records",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "file",
					Usage:       "Path or s3:// URI of the EDI 834 file",
					Destination: &filePath,
				},
				cli.StringSliceFlag{
					Name:  "format",
					Usage: "Export format: xlsx, csv or db. May be repeated (default: xlsx)",
					Value: &formats,
				},
				cli.StringFlag{
					Name:        "out",
					Usage:       "Directory for file exports",
					Value:       constants.DefaultExportDir,
					Destination: &outDir,
				},
			},
			Action: func(c *cli.Context) error {
				if filePath == "" {
					return errors.New("file path (--file) must be provided")
				}
				fs := []string(formats)
				if len(fs) == 0 {
					fs = []string{constants.FormatXLSX}
				}
				return runImport(ctx(), app, filePath, fs, outDir)
			},
		},
	}
	return app
}

func splitSegments(ctx context.Context, path string) ([]string, error) {
	text, err := load(ctx, path)
	if err != nil {
		return nil, err
	}
	return importer.Tokenizer(text).SplitSegments(text)
}

func load(ctx context.Context, path string) (string, error) {
	handler, err := loader.NewFileHandler(path, log.CLI)
	if err != nil {
		return "", err
	}
	return handler.Load(ctx, path)
}

func validate(ctx context.Context, app *cli.App, path string, strict bool) error {
	text, err := load(ctx, path)
	if err != nil {
		return err
	}

	a := &assembler.Assembler{Tokenizer: importer.Tokenizer(text)}
	result, err := a.AssembleText(text)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Writer, "Parsed %d member records from %s\n", len(result.Records), path)
	problems := 0
	for _, n := range result.Notices {
		if !n.Kind.Informational() {
			problems++
			fmt.Fprintln(app.Writer, n)
		}
	}
	fmt.Fprintf(app.Writer, "%d notices, %d affecting member data\n", len(result.Notices), problems)

	if strict && problems > 0 {
		return fmt.Errorf("%d member data notices found in %s", problems, path)
	}
	return nil
}

func runImport(ctx context.Context, app *cli.App, path string, formats []string, dir string) error {
	var repository models.Store
	sinks := make([]export.Sink, 0, len(formats))
	for _, format := range formats {
		if strings.EqualFold(format, constants.FormatDB) && repository == nil {
			repo, closeDB, err := openRepository(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			repository = repo
		}
		sink, err := export.New(format, dir, repository, log.Export)
		if err != nil {
			return err
		}
		sinks = append(sinks, sink)
	}

	handler, err := loader.NewFileHandler(path, log.CLI)
	if err != nil {
		return err
	}

	i := &importer.Importer{Handler: handler, Sinks: sinks, Logger: log.Parser}
	res, err := i.Import(ctx, path)
	if res != nil {
		fmt.Fprintf(app.Writer, "Imported %d member records from %s with %d notices\n",
			len(res.Records), filepath.Base(path), len(res.Notices))
	}
	return err
}
