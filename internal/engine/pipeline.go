package engine

import (
	"io"
	"time"

	"enrollment/internal/config"
	"enrollment/internal/models"
	"enrollment/internal/report"

	"github.com/labstack/gommon/log"
)

// Pipeline reads the roster, counts majors, joins program names and ranks them.
type Pipeline struct {
	cfg    config.Config
	loader *Loader
	logger *log.Logger
}

func NewPipeline(cfg config.Config, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = quietLogger()
	}
	return &Pipeline{
		cfg:    cfg,
		loader: NewLoader(nil, logger),
		logger: logger,
	}
}

// Ranked returns (count, code) pairs sorted largest first along with the
// code -> program name lookup. Names are not resolved here.
func (p *Pipeline) Ranked() ([]CountPair, LookupMap, error) {
	start := time.Now()

	majors, err := p.loader.ReadColumn(p.cfg.RosterPath, p.cfg.MajorField)
	if err != nil {
		return nil, nil, err
	}
	counts := Counts(majors)
	p.logger.Infof("counted %d students across %d majors", counts.Total(), counts.Len())

	names, err := p.loader.ReadDict(p.cfg.ProgramsPath, p.cfg.CodeField, p.cfg.NameField)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Debugf("loaded %d program names", len(names))

	byCount := ItemsVK(counts)
	SortDescending(byCount)

	p.logger.Debugf("ranking done in %v", time.Since(start))
	return byCount, names, nil
}

// Run writes one line per major to w, most enrolled first. A code without a
// program name stops the run; lines already written are left in place.
func (p *Pipeline) Run(w io.Writer) error {
	tw, err := report.NewTextWriter(w, p.cfg.LineTemplate)
	if err != nil {
		return err
	}
	byCount, names, err := p.Ranked()
	if err != nil {
		return err
	}
	for _, pair := range byCount {
		program, ok := names[pair.Code]
		if !ok {
			return missingKey(pair.Code)
		}
		if err := tw.WriteLine(models.ProgramRow{Code: pair.Code, Program: program, Count: pair.Count}); err != nil {
			return err
		}
	}
	return nil
}

// Report resolves every ranked code up front; nothing is returned unless all
// codes have a program name.
func (p *Pipeline) Report() (*models.Report, error) {
	byCount, names, err := p.Ranked()
	if err != nil {
		return nil, err
	}
	return Resolve(byCount, names)
}

// Resolve joins sorted pairs with their program names.
func Resolve(byCount []CountPair, names LookupMap) (*models.Report, error) {
	r := &models.Report{Programs: make([]models.ProgramRow, 0, len(byCount))}
	for _, pair := range byCount {
		program, ok := names[pair.Code]
		if !ok {
			return nil, missingKey(pair.Code)
		}
		r.Programs = append(r.Programs, models.ProgramRow{Code: pair.Code, Program: program, Count: pair.Count})
		r.Summary.Students += pair.Count
	}
	r.Summary.Programs = len(r.Programs)
	return r, nil
}
