// Package haushalt extracts a validated, policy-block aggregated budget from
// an Ergebnishaushalt workbook.
package haushalt

import (
	"time"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/parser"
	"go.uber.org/zap"
)

// DefaultSheet is the sheet holding the budget rows.
const DefaultSheet = "Grunddaten"

// Options configures processing.
type Options struct {
	// Sheet is the name of the sheet to read.
	Sheet string
	// Columns names the header fields to read.
	Columns parser.Columns
	// Logger receives progress messages. If nil, nothing is logged.
	Logger *zap.Logger
	// Now returns the generation timestamp. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		Sheet:   DefaultSheet,
		Columns: parser.DefaultColumns(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
