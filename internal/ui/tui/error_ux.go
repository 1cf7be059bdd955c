package tui

import (
	"errors"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

// userMessage превращает ошибку в короткую строку для строки состояния
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var ee *locerr.EvalError
	if errors.As(err, &ee) {
		return ee.Error()
	}

	switch {
	case errors.Is(err, locerr.ErrNothingToExport):
		return "History is empty, nothing to export"
	case errors.Is(err, locerr.ErrPrecisionOutOfRange):
		return "Precision must be between 2 and 15"
	case errors.Is(err, locerr.ErrInvalidPlotRange),
		errors.Is(err, locerr.ErrInsufficientData),
		errors.Is(err, locerr.ErrUnsupportedSymbolic):
		return err.Error()
	}
	return "Unexpected error (see logs)"
}
