package importer

import (
	"context"
	"fmt"

	"github.com/CMSgov/edi834-app/conf"
	"github.com/CMSgov/edi834-app/edi834/assembler"
	"github.com/CMSgov/edi834-app/edi834/export"
	"github.com/CMSgov/edi834-app/edi834/loader"
	"github.com/CMSgov/edi834-app/edi834/metrics"
	"github.com/CMSgov/edi834-app/edi834/models"
	"github.com/CMSgov/edi834-app/edi834/segment"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ImportResult summarizes one import run.
type ImportResult struct {
	RunID       string
	Source      string
	Records     []models.MemberRecord
	Notices     []assembler.Notice
	FailedSinks int
}

// Importer loads an EDI payload, assembles its member records and hands them to each sink.
type Importer struct {
	Handler loader.FileHandler
	Sinks   []export.Sink
	Logger  logrus.FieldLogger
}

// Tokenizer returns the tokenizer for text. Delimiters set in the configuration win;
// otherwise they are read from the ISA header, falling back to the defaults.
func Tokenizer(text string) segment.Tokenizer {
	sep, term := conf.GetEnv("EDI834_FIELD_SEPARATOR"), conf.GetEnv("EDI834_SEGMENT_TERMINATOR")
	if sep == "" && term == "" {
		return segment.DetectDelimiters(text)
	}

	t := segment.Default
	if sep != "" {
		t.FieldSeparator = sep
	}
	if term != "" {
		t.SegmentTerminator = term
	}
	return t
}

// Import runs the pipeline for path. A load or assembly failure stops the import and
// nothing is written. A failing sink does not stop the others; the result is returned
// along with an error counting the failures.
func (i *Importer) Import(ctx context.Context, path string) (*ImportResult, error) {
	res := &ImportResult{RunID: uuid.New(), Source: path}
	logger := i.Logger.WithFields(logrus.Fields{"run_id": res.RunID, "source": path})

	ctx, finish := metrics.StartImport(ctx, "Import EDI 834")
	defer finish()

	done := metrics.StartStage(ctx, "Load")
	text, err := i.Handler.Load(ctx, path)
	done()
	if err != nil {
		err = errors.Wrapf(err, "could not load %s", path)
		logger.Error(err)
		return nil, err
	}

	done = metrics.StartStage(ctx, "Assemble")
	a := &assembler.Assembler{Tokenizer: Tokenizer(text), Observer: assembler.LogObserver{Logger: logger}}
	result, err := a.AssembleText(text)
	done()
	if err != nil {
		err = errors.Wrapf(err, "could not assemble %s", path)
		logger.Error(err)
		return nil, err
	}
	res.Records, res.Notices = result.Records, result.Notices

	logger.WithFields(noticeFields(result.Notices)).
		Infof("Assembled %d member records with %d notices", len(res.Records), len(res.Notices))

	for _, sink := range i.Sinks {
		done = metrics.StartStage(ctx, fmt.Sprintf("Write %T", sink))
		err := sink.Write(ctx, path, res.Records)
		done()
		if err != nil {
			res.FailedSinks++
			logger.Errorf("Failed to write records with %T: %s", sink, err)
		}
	}

	if res.FailedSinks > 0 {
		return res, fmt.Errorf("%d of %d sinks failed for %s", res.FailedSinks, len(i.Sinks), path)
	}

	logger.Infof("Completed import of %s", path)
	return res, nil
}

func noticeFields(notices []assembler.Notice) logrus.Fields {
	fields := logrus.Fields{}
	for _, n := range notices {
		key := string(n.Kind)
		count, _ := fields[key].(int)
		fields[key] = count + 1
	}
	return fields
}
