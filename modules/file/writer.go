package file

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/vk/nodegrid/internal/node"
	"github.com/vk/nodegrid/internal/param"
)

// Writer writes its data input to the file named by its path input. The
// handle stays open between evaluations and is reopened only when the path
// or the append mode changes, so repeated evaluations with the same target
// keep writing after the previous data.
type Writer struct {
	fs     afero.Fs
	file   afero.File
	path   string
	append bool
}

// NewWriter returns a writer operating on fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Eval implements node.Node.
func (w *Writer) Eval(inputs node.Inputs) (param.Outputs, error) {
	path, err := inputs.String(0)
	if err != nil {
		return nil, err
	}
	appendMode, err := inputs.BoolOr(1, false)
	if err != nil {
		return nil, err
	}
	data, err := inputs.String(2)
	if err != nil {
		return nil, err
	}

	if w.file == nil || path != w.path || appendMode != w.append {
		if err := w.open(path, appendMode); err != nil {
			return nil, err
		}
	}

	n, err := w.file.WriteString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return param.Outputs{param.NumberValue(float64(n))}, nil
}

func (w *Writer) open(path string, appendMode bool) error {
	if err := w.Close(); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := w.fs.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	w.file = f
	w.path = path
	w.append = appendMode
	return nil
}

// Close closes the current handle, if any.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, err)
	}
	return nil
}
