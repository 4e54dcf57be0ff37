package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Line template tags understood by the text report.
const (
	TagCount   = "count"
	TagCode    = "code"
	TagProgram = "program"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config names the input files and columns of a run and how to emit it.
// The zero value is not usable; start from Default.
type Config struct {
	RosterPath   string
	ProgramsPath string
	MajorField   string
	CodeField    string
	NameField    string
	Format       string
	LineTemplate string
	// Addr, when set, serves the report over HTTP instead of printing it.
	Addr    string
	Verbose bool
}

func Default() Config {
	return Config{
		RosterPath:   "data/roster_selected.csv",
		ProgramsPath: "data/programs.csv",
		MajorField:   "Major",
		CodeField:    "Code",
		NameField:    "Program Name",
		Format:       FormatText,
		LineTemplate: "${count} ${program}",
	}
}

// Parse overrides Default with command line flags. Running with no flags
// reproduces the historical fixed paths.
func Parse(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("enrollment", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "Roster CSV path")
	fs.StringVar(&cfg.ProgramsPath, "programs", cfg.ProgramsPath, "Programs CSV path")
	fs.StringVar(&cfg.MajorField, "major-field", cfg.MajorField, "Roster column holding the program code")
	fs.StringVar(&cfg.CodeField, "code-field", cfg.CodeField, "Programs column holding the code")
	fs.StringVar(&cfg.NameField, "name-field", cfg.NameField, "Programs column holding the program name")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: text|json")
	fs.StringVar(&cfg.LineTemplate, "template", cfg.LineTemplate, "Text line template (${count}, ${code}, ${program})")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Serve the report over HTTP on this address")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if fs.NArg() != 0 {
		return Config{}, fmt.Errorf("%w: unexpected arguments %q", ErrInvalidConfig, strings.Join(fs.Args(), " "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.RosterPath == "":
		return fmt.Errorf("%w: roster path is empty", ErrInvalidConfig)
	case c.ProgramsPath == "":
		return fmt.Errorf("%w: programs path is empty", ErrInvalidConfig)
	case c.MajorField == "", c.CodeField == "", c.NameField == "":
		return fmt.Errorf("%w: column names must not be empty", ErrInvalidConfig)
	}

	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	return ValidateTemplate(c.LineTemplate)
}

// ValidateTemplate rejects templates using tags other than count, code and program.
func ValidateTemplate(tmpl string) error {
	t, err := fasttemplate.NewTemplate(tmpl, "${", "}")
	if err != nil {
		return fmt.Errorf("%w: template: %v", ErrInvalidConfig, err)
	}
	_, err = t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		switch tag {
		case TagCount, TagCode, TagProgram:
			return 0, nil
		}
		return 0, fmt.Errorf("unknown tag %q", tag)
	})
	if err != nil {
		return fmt.Errorf("%w: template: %v", ErrInvalidConfig, err)
	}
	return nil
}
