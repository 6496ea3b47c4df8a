package main

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/pixpack"
	"github.com/bodgit/pixpack/tint"
	"github.com/urfave/cli/v2"
)

const defaultDB = "pixpack.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newPixpack(c *cli.Context) (*pixpack.Pixpack, error) {
	db := c.String("db")
	if c.Bool("no-cache") {
		db = ""
	}

	return pixpack.New(db, newLogger(c), &pixpack.Options{
		MaxColors: c.Int("max-colors"),
		Workers:   c.Int("workers"),
		Force:     c.Bool("force"),
	})
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func tintAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	var colors []color.RGBA
	for _, s := range c.StringSlice("color") {
		rgba, err := tint.ParseColor(s)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		colors = append(colors, rgba)
	}
	if len(colors) == 0 {
		return cli.NewExitError("at least one --color is required", 1)
	}

	src, err := decodeImage(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var base image.Image
	if c.String("base") != "" {
		if base, err = decodeImage(c.String("base")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if err := png.Encode(f, tint.Sheet(base, src, colors)); err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := f.Close(); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pixpack"
	app.Usage = "Palette image asset packer"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXPACK_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to asset cache database",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "do not use the asset cache database",
		},
		&cli.IntFlag{
			Name:    "max-colors",
			EnvVars: []string{"PIXPACK_MAX_COLORS"},
			Value:   255,
			Usage:   "maximum palette size including the transparent entry",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode an image to an asset",
			Description: "",
			ArgsUsage:   "FILE [OUTPUT]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: "ignore any cached asset",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPixpack(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := p.EncodeFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Decode an asset to a PNG image",
			Description: "",
			ArgsUsage:   "FILE [OUTPUT]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := pixpack.New("", newLogger(c), nil)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := p.DecodeFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan a directory and encode every image",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					EnvVars: []string{"PIXPACK_WORKERS"},
					Value:   4,
					Usage:   "number of images to encode concurrently",
				},
				&cli.BoolFlag{
					Name:  "force",
					Usage: "ignore any cached asset",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPixpack(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := p.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "tint",
			Usage:       "Build a sheet of tinted copies of a sprite",
			Description: "",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  "color",
					Usage: "tint color as #rrggbb or r,g,b, repeat for each copy",
				},
				&cli.StringFlag{
					Name:  "base",
					Usage: "image to draw the copies onto",
				},
			},
			Action: tintAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
