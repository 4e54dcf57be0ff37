// Package report renders ranked enrollment counts as text lines or JSON.
package report

import (
	"fmt"
	"io"
	"strconv"

	"enrollment/internal/config"
	"enrollment/internal/models"

	"github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"
)

// TextWriter renders one line per program through a fasttemplate line template.
type TextWriter struct {
	w    io.Writer
	tmpl *fasttemplate.Template
}

func NewTextWriter(w io.Writer, tmpl string) (*TextWriter, error) {
	if err := config.ValidateTemplate(tmpl); err != nil {
		return nil, err
	}
	t, err := fasttemplate.NewTemplate(tmpl, "${", "}")
	if err != nil {
		return nil, err
	}
	return &TextWriter{w: w, tmpl: t}, nil
}

// WriteLine writes a single line followed by a newline.
func (tw *TextWriter) WriteLine(row models.ProgramRow) error {
	_, err := tw.tmpl.ExecuteFunc(tw.w, func(w io.Writer, tag string) (int, error) {
		switch tag {
		case config.TagCount:
			return io.WriteString(w, strconv.Itoa(row.Count))
		case config.TagCode:
			return io.WriteString(w, row.Code)
		case config.TagProgram:
			return io.WriteString(w, row.Program)
		}
		return 0, fmt.Errorf("unknown tag %q", tag)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(tw.w, "\n")
	return err
}

func WriteJSON(w io.Writer, r *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
